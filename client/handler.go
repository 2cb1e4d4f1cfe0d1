package client

import (
	"errors"
	"net/http"

	"github.com/cloudflare/cfssl/log"
	"github.com/gin-gonic/gin"

	"github.com/greenguardV2/chain"
	"github.com/greenguardV2/commoncon"
	"github.com/greenguardV2/contract"
	"github.com/greenguardV2/meta"
	"github.com/greenguardV2/util"
)

func goodResponse(data interface{}) meta.HttpResponse {
	return meta.HttpResponse{Code: 20000, Data: data}
}

func errResponse(msg string) meta.HttpResponse {
	return meta.HttpResponse{Code: 40000, Error: msg}
}

// postVerification fans the event out to the verification contracts, then
// seals a canonical record of it (plus the triggered actions) into the chain.
func (s *Server) postVerification(ctx *gin.Context) {
	post := meta.PostVerification{}
	if err := ctx.ShouldBind(&post); err != nil {
		ctx.JSON(http.StatusOK, errResponse("invalid verification payload"))
		return
	}
	if post.CompanyName == "" {
		log.Error("verification submitted without a company name")
		ctx.JSON(http.StatusOK, errResponse("company_name is required"))
		return
	}

	execution := s.registry.ExecuteVerificationContracts(map[string]interface{}{
		"company_name":       post.CompanyName,
		"claim":              post.Claim,
		"verification_score": post.VerificationScore,
		"confidence":         post.Confidence,
	})

	version := post.Version
	if version == "" {
		version = commoncon.SystemVersion
	}
	userEmail := post.UserEmail
	if userEmail == "" {
		userEmail = "anonymous"
	}
	data := meta.VerificationData{
		Type:                   meta.VerificationType,
		CompanyName:            post.CompanyName,
		Claim:                  util.Truncate(post.Claim, commoncon.MaxClaimLen),
		VerificationScore:      post.VerificationScore,
		Status:                 post.Status,
		RiskLevel:              post.RiskLevel,
		EvidenceSummary:        util.Truncate(post.EvidenceSummary, commoncon.MaxEvidenceLen),
		UserEmail:              userEmail,
		ClientIP:               ctx.ClientIP(),
		Timestamp:              util.NowISO(),
		Version:                version,
		SmartContractsExecuted: execution.ContractsExecuted,
		AutomatedActions:       execution.AutomatedActions,
	}

	blockID, err := s.chain.AddBlock(data)
	if err != nil {
		log.Errorf("verification block rejected: %v", err)
		if errors.Is(err, chain.ErrMiningTimeout) {
			ctx.JSON(http.StatusOK, errResponse("mining timeout, event not recorded"))
			return
		}
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, goodResponse(gin.H{
		"block_id":        blockID,
		"smart_contracts": execution,
	}))
}

func (s *Server) postClaimAnalysis(ctx *gin.Context) {
	post := meta.PostClaimAnalysis{}
	if err := ctx.ShouldBind(&post); err != nil {
		ctx.JSON(http.StatusOK, errResponse("invalid claim analysis payload"))
		return
	}

	analysisType := post.AnalysisType
	if analysisType == "" {
		analysisType = "website"
	}
	userEmail := post.UserEmail
	if userEmail == "" {
		userEmail = "anonymous"
	}
	claims := post.EnvironmentalClaims
	if len(claims) > commoncon.MaxEnvironmentalClaims {
		claims = claims[:commoncon.MaxEnvironmentalClaims]
	}
	data := meta.ClaimAnalysisData{
		Type:                meta.ClaimAnalysisType,
		Content:             util.Truncate(post.Content, commoncon.MaxContentLen),
		ClaimsCount:         post.ClaimsCount,
		URL:                 post.URL,
		AnalysisType:        analysisType,
		EnvironmentalClaims: claims,
		UserEmail:           userEmail,
		ClientIP:            ctx.ClientIP(),
		Timestamp:           util.NowISO(),
		ProcessingTime:      post.ProcessingTime,
	}

	blockID, err := s.chain.AddBlock(data)
	if err != nil {
		log.Errorf("claim analysis block rejected: %v", err)
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, goodResponse(gin.H{"block_id": blockID}))
}

func (s *Server) deployContract(ctx *gin.Context) {
	post := meta.PostContract{}
	if err := ctx.ShouldBind(&post); err != nil {
		ctx.JSON(http.StatusOK, errResponse("invalid contract payload"))
		return
	}
	creator := post.Creator
	if creator == "" {
		creator = commoncon.SystemCreator
	}
	id, err := s.registry.Deploy(meta.ContractType(post.ContractType), creator, post.Parameters)
	if err != nil {
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, goodResponse(gin.H{"contract_id": id}))
}

// executeContract runs one contract manually, addressed by id or, failing
// that, by type (latest deployment wins).
func (s *Server) executeContract(ctx *gin.Context) {
	post := meta.PostExecution{}
	if err := ctx.ShouldBind(&post); err != nil {
		ctx.JSON(http.StatusOK, errResponse("invalid execution payload"))
		return
	}

	var c *contract.Contract
	var ok bool
	if post.ContractID != "" {
		c, ok = s.registry.Get(post.ContractID)
	} else {
		c, ok = s.registry.GetByType(meta.ContractType(post.ContractType))
	}
	if !ok {
		ctx.JSON(http.StatusOK, errResponse("contract not found"))
		return
	}

	execContext := map[string]interface{}{
		"manual_execution": true,
		"timestamp":        util.NowUnixFloat(),
	}
	for k, v := range post.Context {
		execContext[k] = v
	}

	// Failures come back as structured results, not HTTP errors.
	result := c.Execute(post.Inputs, execContext)
	ctx.JSON(http.StatusOK, goodResponse(result))
}

func (s *Server) queryStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, goodResponse(s.stats.ChainStatistics()))
}

func (s *Server) getBlock(ctx *gin.Context) {
	blockID := ctx.Query("id")
	if blockID == "" {
		ctx.JSON(http.StatusOK, errResponse("id is required"))
		return
	}
	block, ok := s.chain.GetBlock(blockID)
	if !ok {
		ctx.JSON(http.StatusOK, errResponse("block not found"))
		return
	}
	ctx.JSON(http.StatusOK, goodResponse(block))
}

func (s *Server) getChain(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, goodResponse(s.chain.Blocks()))
}

func (s *Server) getContract(ctx *gin.Context) {
	id := ctx.Query("id")
	if id == "" {
		ctx.JSON(http.StatusOK, errResponse("id is required"))
		return
	}
	c, ok := s.registry.Get(id)
	if !ok {
		ctx.JSON(http.StatusOK, errResponse("contract not found"))
		return
	}
	ctx.JSON(http.StatusOK, goodResponse(c.View()))
}

func (s *Server) getCompanyHistory(ctx *gin.Context) {
	company := ctx.Query("company")
	if company == "" {
		ctx.JSON(http.StatusOK, errResponse("company is required"))
		return
	}
	ctx.JSON(http.StatusOK, goodResponse(s.stats.CompanyHistory(company)))
}

func (s *Server) health(ctx *gin.Context) {
	report := s.chain.VerifyIntegrity()
	ctx.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"total_blocks": s.chain.Len(),
		"chain_valid":  report.Valid,
	})
}
