package fundamentus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/pkg/httputil"
	"github.com/wonny/fiidash/pkg/logger"
)

func detailsPage(segment string) string {
	return `<html><body>
	<table class="w728">
		<tr>
			<td class="label"><span class="help tips">?</span><span class="txt">Papel</span></td>
			<td class="data"><span class="txt">KNCR11</span></td>
		</tr>
		<tr>
			<td class="label"><span class="help tips">?</span><span class="txt">Segmento</span></td>
			<td class="data"><span class="txt">` + segment + `</span></td>
		</tr>
	</table>
	</body></html>`
}

func TestParseSegment(t *testing.T) {
	segment, err := parseSegment(strings.NewReader(detailsPage("Lajes Corporativas")))
	require.NoError(t, err)
	assert.Equal(t, "Lajes Corporativas", segment)

	_, err = parseSegment(strings.NewReader("<html><body><table></table></body></html>"))
	assert.True(t, errors.Is(err, ErrSegmentNotFound))
}

func TestMapSegment(t *testing.T) {
	tests := []struct {
		segment string
		want    contracts.Sector
	}{
		{"Títulos e Val. Mob.", contracts.SectorReceivables},
		{" Logística ", contracts.SectorLogistics},
		{"Shoppings", contracts.SectorMalls},
		{"Lajes Corporativas", contracts.SectorOffices},
		{"FOF", contracts.SectorFundsOfFunds},
		{"Híbrido", contracts.Sector("Híbrido")},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			assert.Equal(t, tt.want, MapSegment(tt.segment))
		})
	}
}

func newClient(baseURL string) *Client {
	return NewClient(httputil.New("fundamentus", time.Second, logger.Nop()).DisableRetry(), baseURL, logger.Nop())
}

func TestSectorDecodesLatin1(t *testing.T) {
	page, err := charmap.ISO8859_1.NewEncoder().String(detailsPage("Títulos e Val. Mob."))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detalhes.php", r.URL.Path)
		assert.Equal(t, "KNCR11", r.URL.Query().Get("papel"))

		w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
		w.Write([]byte(page))
	}))
	defer server.Close()

	sector, err := newClient(server.URL).Sector(context.Background(), "KNCR11")
	require.NoError(t, err)
	assert.Equal(t, contracts.SectorReceivables, sector)
}

func TestEnrich(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("papel") {
		case "HGLG11":
			w.Write([]byte(detailsPage("Logística")))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	funds := []*contracts.FundRecord{
		{Symbol: "HGLG11"},
		{Symbol: "XPML11", Sector: contracts.SectorMalls},
		{Symbol: "GONE11"},
	}

	resolved := newClient(server.URL).Enrich(context.Background(), funds)

	assert.Equal(t, 1, resolved)
	assert.Equal(t, contracts.SectorLogistics, funds[0].Sector)
	assert.Equal(t, contracts.SectorMalls, funds[1].Sector)
	assert.True(t, funds[2].Sector.IsEmpty())
}

func TestDetailsURL(t *testing.T) {
	assert.Equal(t, "https://www.fundamentus.com.br/detalhes.php?papel=MXRF11",
		DetailsURL("https://www.fundamentus.com.br/", "MXRF11"))
}
