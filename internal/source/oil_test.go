package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cfudash/fundboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOilCSV = "Entity,Code,Year,Oil production (TWh)\n" +
	"Norway,NOR,2021,1100.5\n" +
	"Norway,NOR,2022,1050\n" +
	"Japan,JPN,2022,\n"

func TestParseOilCSV(t *testing.T) {
	ds, err := ParseOilCSV(strings.NewReader(sampleOilCSV))
	require.NoError(t, err)
	require.Len(t, ds, 3)
	assert.Equal(t, "Norway", ds[0][schema.ColEntity])
	assert.Equal(t, "2021", ds[0][schema.ColYear])
	assert.Equal(t, "1100.5", ds[0][schema.ColOilProduction])
	assert.Equal(t, "", ds[2][schema.ColOilProduction])
}

func TestParseOilCSV_ByteOrderMark(t *testing.T) {
	ds, err := ParseOilCSV(strings.NewReader("\ufeff" + sampleOilCSV))
	require.NoError(t, err)
	assert.Equal(t, "Norway", ds[0][schema.ColEntity])
}

func TestParseOilCSV_ShortRow(t *testing.T) {
	ds, err := ParseOilCSV(strings.NewReader("Entity,Year,Oil production (TWh)\nChad,2020\n"))
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Nil(t, ds[0][schema.ColOilProduction])
}

func TestParseOilCSV_Errors(t *testing.T) {
	_, err := ParseOilCSV(strings.NewReader(""))
	assert.ErrorContains(t, err, "empty CSV")

	_, err = ParseOilCSV(strings.NewReader("Entity,Year\nNorway,2022\n"))
	assert.ErrorContains(t, err, "Oil production (TWh)")
}

func TestOilFetcher_FetchOil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleOilCSV))
	}))
	defer srv.Close()

	ds, err := NewOilFetcher(srv.URL, 0).FetchOil(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds, 3)
}

func TestOilFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOilFetcher(srv.URL, 0).FetchOil(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "gone")
}
