package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"idea-lab/cmd/api/auth"
	"idea-lab/cmd/api/dto"
	"idea-lab/cmd/api/services"
)

// ListMyPlansHandler godoc
// @Summary      내 플랜 목록
// @Description  요청자의 플랜을 최신순으로 페이지 조회한다.
// @Tags         plans
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int  false  "Page number (1-based)"
// @Param        page_size  query     int  false  "Page size (<=100)"
// @Success      200        {object}  dto.PaginationIdeaPlanDTO
// @Failure      401        {object}  dto.ErrorResponseDTO
// @Router       /plans [get]
func ListMyPlansHandler(svc *services.PlanService, parser auth.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		userCode, ok := requireUserCodeFromHeader(c, parser)
		if !ok {
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

		res, err := svc.ListMine(c.Request.Context(), userCode, services.ListPlansInput{Page: page, PageSize: pageSize})
		if err != nil {
			respondError(c, err)
			return
		}

		out := dto.Pagination[dto.IdeaPlanDTO]{
			Data:     make([]dto.IdeaPlanDTO, 0, len(res.Plans)),
			Page:     res.Page,
			PageSize: res.PageSize,
			Total:    res.Total,
		}
		for _, p := range res.Plans {
			out.Data = append(out.Data, toIdeaPlanDTO(p))
		}
		c.JSON(http.StatusOK, out)
	}
}

// GetPlanHandler godoc
// @Summary      플랜 조회
// @Tags         plans
// @Param        id   path      string  true  "plan id"
// @Produce      json
// @Success      200  {object}  dto.IdeaPlanDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /plans/{id} [get]
func GetPlanHandler(svc *services.PlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		plan, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toIdeaPlanDTO(plan))
	}
}

// DeletePlanHandler godoc
// @Summary      플랜 삭제
// @Description  소유자만 삭제할 수 있다. 이미 삭제된 플랜은 404.
// @Tags         plans
// @Security     BearerAuth
// @Param        id   path      string  true  "plan id"
// @Success      204  {string}  string  "콘텐츠 없음"
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /plans/{id} [delete]
func DeletePlanHandler(svc *services.PlanService, parser auth.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		userCode, ok := requireUserCodeFromHeader(c, parser)
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), userCode, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
