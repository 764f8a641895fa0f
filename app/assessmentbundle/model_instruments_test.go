package assessmentbundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentCatalog(t *testing.T) {
	catalog := InstrumentCatalog()
	assert.Len(t, catalog, 6)

	for _, code := range []string{Instrument_EPDS, Instrument_BDI, Instrument_BAI, Instrument_ACEQ, Instrument_SADS, Instrument_ASRS} {
		def, ok := FindInstrument(code)
		require.True(t, ok, code)
		assert.NotEmpty(t, def.SheetName)
		_, ok = def.Field("total_score")
		assert.True(t, ok, code)
	}

	_, ok := FindInstrument("PHQ-9")
	assert.False(t, ok)
}

func TestSeverityBandsClassify(t *testing.T) {
	epds, ok := FindInstrument(Instrument_EPDS)
	require.True(t, ok)
	total, ok := epds.Field("total_score")
	require.True(t, ok)

	assert.Equal(t, "Minimal", total.Classify(0))
	assert.Equal(t, "Minimal", total.Classify(9))
	assert.Equal(t, "Mild", total.Classify(10))
	assert.Equal(t, "Moderate", total.Classify(15))
	assert.Equal(t, "Severe", total.Classify(30))
	assert.Equal(t, Severity_Unclassified, total.Classify(31))
}

func TestSeverityBandsClassifyCustomRanges(t *testing.T) {
	bands := SeverityBands{
		{Label: "minimal", Lower: 0, Upper: 9},
		{Label: "mild", Lower: 10, Upper: 13},
		{Label: "severe", Lower: 14, Upper: 30},
	}

	assert.Equal(t, "severe", bands.Classify(15))
	assert.Equal(t, "mild", bands.Classify(10))
	assert.Equal(t, Severity_Unclassified, bands.Classify(-1))
	assert.Equal(t, Severity_Unclassified, bands.Classify(31))
}

func TestClassifyWithoutBands(t *testing.T) {
	epds, ok := FindInstrument(Instrument_EPDS)
	require.True(t, ok)
	item10, ok := epds.Field("item_10_score")
	require.True(t, ok)
	require.Empty(t, item10.Bands)

	assert.Equal(t, "", item10.Classify(2))
}

func TestPercentFieldsAreMarked(t *testing.T) {
	asrs, ok := FindInstrument(Instrument_ASRS)
	require.True(t, ok)

	percent := 0
	for _, field := range asrs.Fields {
		if field.IsPercent {
			percent++
		}
	}
	assert.Equal(t, 3, percent)
}
