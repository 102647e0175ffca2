package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ledgerlens/reconcile/internal/api/dto"
	"github.com/ledgerlens/reconcile/internal/domain/identity"
	"github.com/ledgerlens/reconcile/internal/domain/recon"
	"github.com/ledgerlens/reconcile/internal/infrastructure/storage"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewHealthResponse())
}

func (s *Server) handleReconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	resolver := s.svc.Resolver()
	source, err := toRecords(req.Source, recon.OriginSource, resolver)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}
	target, err := toRecords(req.Target, recon.OriginTarget, resolver)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	result, err := s.svc.RunRecords(c.Request.Context(), source, target, req.ReportPath)
	if err != nil {
		var invalid *recon.InvalidRecordError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, dto.ValidationError(invalid.Error()))
			return
		}
		s.logger.Error("reconcile failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{
		RunID:      result.RunID,
		Summary:    result.Summary,
		Rows:       result.Rows,
		ReportPath: result.ReportPath,
	})
}

func (s *Server) handleListRuns(c *gin.Context) {
	filters := storage.RunFilters{
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}

	result, err := s.repo.ListRuns(filters)
	if err != nil {
		s.logger.Error("failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RunListResponse{
		Runs:       make([]dto.RunResponse, 0, len(result.Runs)),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
	for _, run := range result.Runs {
		response.Runs = append(response.Runs, dto.ToRunResponse(run))
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleGetRun(c *gin.Context) {
	id := c.Param("id")

	run, err := s.repo.GetRun(id)
	if err != nil {
		s.logger.Error("failed to get run", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("run"))
		return
	}

	c.JSON(http.StatusOK, dto.ToRunResponse(run))
}

const dateLayout = "2006-01-02"

// toRecords converts request records into engine records, resolving card
// tokens through the configured identity map.
func toRecords(reqs []dto.RecordRequest, origin recon.Origin, resolver *identity.Resolver) ([]recon.TransactionRecord, error) {
	records := make([]recon.TransactionRecord, 0, len(reqs))
	for i, r := range reqs {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = fmt.Sprintf("%s-%d", origin, i+1)
		}

		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("%s record %s: invalid date %q (want YYYY-MM-DD)", origin, id, r.Date)
		}
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("%s record %s: invalid amount %q", origin, id, r.Amount)
		}

		who := identity.Person(r.Person)
		if strings.TrimSpace(r.Card) != "" {
			who = resolver.Resolve(strings.TrimSpace(r.Card))
		}

		records = append(records, recon.TransactionRecord{
			ID:          id,
			Date:        date,
			Amount:      amount,
			Description: r.Description,
			Identity:    who,
			Origin:      origin,
		})
	}
	return records, nil
}

func queryInt(c *gin.Context, name string, defaultVal int) int {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
