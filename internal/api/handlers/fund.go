package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wonny/fiidash/internal/charts"
	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/internal/dashboard"
	"github.com/wonny/fiidash/internal/dataset"
	"github.com/wonny/fiidash/internal/recommend"
	"github.com/wonny/fiidash/internal/screening"
	"github.com/wonny/fiidash/pkg/logger"
)

// LoadErrorMessage is shown whenever the dataset cannot be read
const LoadErrorMessage = "Erro ao carregar dados"

// Source provides the current processed document
type Source interface {
	Current(ctx context.Context) (*dataset.Document, error)
}

// FundHandler serves the dashboard data
// ⭐ SSOT: FII 조회 API 핸들러는 이 구조체에서만
type FundHandler struct {
	source Source
	logger *logger.Logger
}

// NewFundHandler creates a new fund handler
func NewFundHandler(source Source, log *logger.Logger) *FundHandler {
	return &FundHandler{
		source: source,
		logger: log,
	}
}

// FundsResponse is the filtered fund list
type FundsResponse struct {
	UpdatedAt string                  `json:"atualizacao"`
	Total     int                     `json:"total"`
	Count     int                     `json:"count"`
	Funds     []*contracts.FundRecord `json:"fiis"`
}

// RecommendationItem is one entry of a profile list
type RecommendationItem struct {
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

// GetFunds returns the funds matching the query filters
// GET /api/fiis?sector=&minYield=&maxPrice=
func (h *FundHandler) GetFunds(w http.ResponseWriter, r *http.Request) {
	criteria, err := ParseCriteria(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, ok := h.load(w, r)
	if !ok {
		return
	}

	funds := screening.ApplyFilters(doc.Funds, criteria)
	respondJSON(w, http.StatusOK, FundsResponse{
		UpdatedAt: doc.UpdatedAt,
		Total:     len(doc.Funds),
		Count:     len(funds),
		Funds:     funds,
	})
}

// GetSectors returns the filter dropdown options
// GET /api/sectors
func (h *FundHandler) GetSectors(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, screening.SectorOptions(doc.Funds))
}

// GetSectorChart returns the sector distribution pie
// GET /api/charts/sectors
func (h *FundHandler) GetSectorChart(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, charts.SectorDistribution(doc.Funds))
}

// GetBubbleChart returns the P/VP x DY points
// GET /api/charts/pvp-dy
func (h *FundHandler) GetBubbleChart(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, charts.PVPvsDY(doc.Funds))
}

// GetRecommendations returns the three profile lists
// GET /api/recommendations
func (h *FundHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}

	recs := recommend.Classify(doc.Funds)
	resp := make(map[contracts.Profile][]RecommendationItem, len(contracts.Profiles()))
	for _, p := range contracts.Profiles() {
		list := recs.ByProfile(p)
		items := make([]RecommendationItem, 0, len(list))
		for _, f := range list {
			items = append(items, RecommendationItem{
				Symbol: f.Symbol,
				Label:  recommend.FormatRecommendation(f),
			})
		}
		resp[p] = items
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetPage renders the dashboard HTML, filtered by the query
// GET /
func (h *FundHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	criteria, err := ParseCriteria(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := h.source.Current(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dataset")
		http.Error(w, LoadErrorMessage, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboard.Render(w, dashboard.NewPage(doc, criteria)); err != nil {
		h.logger.WithError(err).Error("Failed to render dashboard")
	}
}

func (h *FundHandler) load(w http.ResponseWriter, r *http.Request) (*dataset.Document, bool) {
	doc, err := h.source.Current(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dataset")
		respondError(w, http.StatusServiceUnavailable, LoadErrorMessage)
		return nil, false
	}
	return doc, true
}

// ParseCriteria reads sector, minYield (percent) and maxPrice from query.
// Empty values keep the defaults.
func ParseCriteria(q url.Values) (contracts.FilterCriteria, error) {
	criteria := contracts.DefaultFilterCriteria()
	if sector := q.Get("sector"); sector != "" {
		criteria.Sector = sector
	}

	if v := q.Get("minYield"); v != "" {
		minYield, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(minYield) {
			return criteria, fmt.Errorf("invalid minYield %q: expected a number", v)
		}
		criteria.MinYield = minYield
	}

	if v := q.Get("maxPrice"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(maxPrice) {
			return criteria, fmt.Errorf("invalid maxPrice %q: expected a number", v)
		}
		criteria.MaxPrice = maxPrice
	}

	return criteria, nil
}
