package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"idea-lab/cmd/api/auth"
	"idea-lab/cmd/api/dto"
	"idea-lab/cmd/api/services"
)

// GenerateIdeaPlansHandler godoc
// @Summary      아이디어 배치 생성 및 플랜 저장
// @Description  키워드 또는 주제로 아이디어를 배치 생성하고, 아이디어마다 실행 계획을 만들어 저장한다. 일부 아이디어의 플랜 생성이 실패해도 200 으로 응답하며 해당 항목은 has_plan=false 이다.
// @Tags         ideas
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateIdeaPlansRequestDTO  true  "keywords or topic"
// @Success      200   {object}  dto.BatchResultDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      429   {object}  dto.ErrorResponseDTO  "LLM 일일 한도 초과"
// @Failure      502   {object}  dto.ErrorResponseDTO
// @Router       /ideas/plans [post]
func GenerateIdeaPlansHandler(svc *services.IdeaPlanService, parser auth.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		userCode, ok := requireUserCodeFromHeader(c, parser)
		if !ok {
			return
		}

		var req dto.GenerateIdeaPlansRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: codeInvalidRequest})
			return
		}

		result, err := svc.GenerateIdeaPlans(c.Request.Context(), userCode, services.GenerateInput{
			Keywords: req.Keywords,
			Topic:    req.Topic,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toBatchResultDTO(result))
	}
}

// ExpandMindMapHandler godoc
// @Summary      마인드맵 확장
// @Description  키워드 하나를 루트로 연관 키워드 트리를 만든다. depth 는 1~3 (기본 2).
// @Tags         ideas
// @Accept       json
// @Produce      json
// @Param        body  body      dto.MindMapRequestDTO  true  "keyword"
// @Success      200   {object}  dto.MindMapDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      429   {object}  dto.ErrorResponseDTO
// @Failure      502   {object}  dto.ErrorResponseDTO
// @Router       /ideas/mindmap [post]
func ExpandMindMapHandler(svc *services.MindMapService, parser auth.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := optionalUserCodeFromHeader(c, parser); !ok {
			return
		}

		var req dto.MindMapRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: codeInvalidRequest})
			return
		}

		mm, err := svc.Expand(c.Request.Context(), req.Keyword, req.Depth)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toMindMapDTO(mm))
	}
}

// ResearchSummaryHandler godoc
// @Summary      리서치 요약
// @Description  키워드별 위키백과 요약을 모아 LLM 리서치 요약을 만든다. 조회에 실패한 키워드는 건너뛴다.
// @Tags         ideas
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ResearchRequestDTO  true  "keywords or topic"
// @Success      200   {object}  dto.ResearchSummaryDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      429   {object}  dto.ErrorResponseDTO
// @Failure      502   {object}  dto.ErrorResponseDTO
// @Router       /ideas/research [post]
func ResearchSummaryHandler(svc *services.ResearchService, parser auth.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := optionalUserCodeFromHeader(c, parser); !ok {
			return
		}

		var req dto.ResearchRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: codeInvalidRequest})
			return
		}

		summary, err := svc.Summarize(c.Request.Context(), req.Keywords, req.Topic)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toResearchSummaryDTO(summary))
	}
}
