package owclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onewire-tools/owctl/internal/protocol"
)

func TestFlagsDeterministic(t *testing.T) {
	cfg := Config{Temperature: Kelvin, Pressure: Psi, Format: FIC, Persistence: true}
	require.Equal(t, cfg.Flags(), cfg.Flags())
}

func TestFlagsTemperatureFieldIsolated(t *testing.T) {
	base := Config{}
	changed := Config{Temperature: Rankine}
	diff := base.Flags() ^ changed.Flags()
	assert.NotZero(t, diff)
	assert.Zero(t, diff&^protocol.TemperatureMask,
		"temperature change must only touch the temperature bits")
}

func TestFlagsFieldValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		mask uint32
		want uint32
	}{
		{"celsius default", Config{}, protocol.TemperatureMask, protocol.FlagTempCelsius},
		{"fahrenheit", Config{Temperature: Fahrenheit}, protocol.TemperatureMask, protocol.FlagTempFahrenheit},
		{"kelvin", Config{Temperature: Kelvin}, protocol.TemperatureMask, protocol.FlagTempKelvin},
		{"rankine", Config{Temperature: Rankine}, protocol.TemperatureMask, protocol.FlagTempRankine},
		{"mbar default", Config{}, protocol.PressureMask, protocol.FlagPressureMbar},
		{"atm", Config{Pressure: Atm}, protocol.PressureMask, protocol.FlagPressureAtm},
		{"mmhg", Config{Pressure: MmHg}, protocol.PressureMask, protocol.FlagPressureMmHg},
		{"inhg", Config{Pressure: InHg}, protocol.PressureMask, protocol.FlagPressureInHg},
		{"psi", Config{Pressure: Psi}, protocol.PressureMask, protocol.FlagPressurePsi},
		{"pa", Config{Pressure: Pa}, protocol.PressureMask, protocol.FlagPressurePa},
		{"f.i default", Config{}, protocol.FormatMask, protocol.FlagFormatFdotI},
		{"fi", Config{Format: FI}, protocol.FormatMask, protocol.FlagFormatFI},
		{"fic", Config{Format: FIC}, protocol.FormatMask, protocol.FlagFormatFIC},
		{"f.i.c", Config{Format: FdotIdotC}, protocol.FormatMask, protocol.FlagFormatFdotIdotC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Flags()&tt.mask)
		})
	}
}

func TestFlagsIndependentBits(t *testing.T) {
	assert.NotZero(t, Config{}.Flags()&protocol.FlagBusRet,
		"bus entries are requested unless bare")
	assert.Zero(t, Config{Bare: true}.Flags()&protocol.FlagBusRet)
	assert.NotZero(t, Config{Persistence: true}.Flags()&protocol.FlagPersistence)
	assert.NotZero(t, Config{Uncached: true}.Flags()&protocol.FlagUncached)
}

func TestParseScales(t *testing.T) {
	tempF, err := ParseTemperature("F")
	require.NoError(t, err)
	assert.Equal(t, Fahrenheit, tempF)

	_, err = ParseTemperature("X")
	require.Error(t, err)

	press, err := ParsePressure("inHg")
	require.NoError(t, err)
	assert.Equal(t, InHg, press)

	format, err := ParseIDFormat("fi.c")
	require.NoError(t, err)
	assert.Equal(t, FIdotC, format)

	_, err = ParseIDFormat("cif")
	require.Error(t, err)
}
