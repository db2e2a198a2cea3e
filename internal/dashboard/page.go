package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wonny/fiidash/internal/charts"
	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/internal/dataset"
	"github.com/wonny/fiidash/internal/recommend"
	"github.com/wonny/fiidash/internal/screening"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// profileTitles are the headings of the recommendation lists
var profileTitles = map[contracts.Profile]string{
	contracts.ProfileConservative: "Perfil Conservador",
	contracts.ProfileModerate:     "Perfil Moderado",
	contracts.ProfileAggressive:   "Perfil Arrojado",
}

// RecommendationList is one rendered profile list
type RecommendationList struct {
	Profile contracts.Profile
	Title   string
	Items   []string
}

// Page is everything the dashboard template renders
// ⭐ SSOT: 대시보드 화면 데이터는 여기서만 조립
type Page struct {
	UpdatedAt       string
	Total           int
	Rows            []TableRow
	Sectors         []contracts.Sector
	Criteria        contracts.FilterCriteria
	Recommendations []RecommendationList
	SectorChart     []charts.SectorSlice
	BubbleChart     []charts.BubblePoint
}

// NewPage builds the page for doc. The table honours criteria; charts and
// recommendations always cover the whole document.
func NewPage(doc *dataset.Document, criteria contracts.FilterCriteria) *Page {
	funds := doc.Funds
	recs := recommend.Classify(funds)

	lists := make([]RecommendationList, 0, len(contracts.Profiles()))
	for _, p := range contracts.Profiles() {
		lists = append(lists, RecommendationList{
			Profile: p,
			Title:   profileTitles[p],
			Items:   recommend.FormatAll(recs.ByProfile(p)),
		})
	}

	return &Page{
		UpdatedAt:       displayTime(doc),
		Total:           len(funds),
		Rows:            BuildRows(screening.ApplyFilters(funds, criteria)),
		Sectors:         screening.SectorOptions(funds),
		Criteria:        criteria,
		Recommendations: lists,
		SectorChart:     charts.SectorDistribution(funds),
		BubbleChart:     charts.PVPvsDY(funds),
	}
}

// SelectedSector is the dropdown value for the current criteria
func (p *Page) SelectedSector() string {
	if p.Criteria.MatchesAllSectors() {
		return contracts.AllSectors
	}
	return p.Criteria.Sector
}

// MinYieldValue is the form value of the minimum yield, empty when unset
func (p *Page) MinYieldValue() string {
	if p.Criteria.MinYield <= 0 {
		return ""
	}
	return strconv.FormatFloat(p.Criteria.MinYield, 'f', -1, 64)
}

// MaxPriceValue is the form value of the price ceiling, empty when unbounded
func (p *Page) MaxPriceValue() string {
	if math.IsInf(p.Criteria.MaxPrice, 1) {
		return ""
	}
	return strconv.FormatFloat(p.Criteria.MaxPrice, 'f', -1, 64)
}

// Render writes the dashboard HTML
func Render(w io.Writer, p *Page) error {
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

func displayTime(doc *dataset.Document) string {
	ts, err := doc.UpdatedTime()
	if err != nil {
		return doc.UpdatedAt
	}
	return ts.Format(DisplayTimeLayout)
}

// WriteFile renders the unfiltered dashboard of doc into path
func WriteFile(path string, doc *dataset.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, NewPage(doc, contracts.DefaultFilterCriteria())); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}
