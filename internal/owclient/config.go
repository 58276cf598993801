package owclient

import (
	"fmt"

	"github.com/onewire-tools/owctl/internal/protocol"
)

// TemperatureScale selects the unit owserver converts temperatures to.
type TemperatureScale int

const (
	Celsius TemperatureScale = iota
	Fahrenheit
	Kelvin
	Rankine
)

// PressureScale selects the unit owserver converts pressures to.
type PressureScale int

const (
	Mbar PressureScale = iota
	Atm
	MmHg
	InHg
	Psi
	Pa
)

// IDFormat selects how owserver renders device identifiers: family code,
// serial id and checksum, with or without dot separators.
type IDFormat int

const (
	FdotI IDFormat = iota // f.i (default)
	FI
	FdotIdotC
	FdotIC
	FIdotC
	FIC
)

// ParseTemperature maps the conventional single-letter scale names.
func ParseTemperature(s string) (TemperatureScale, error) {
	switch s {
	case "", "C", "c", "celsius", "Celsius":
		return Celsius, nil
	case "F", "f", "fahrenheit", "Fahrenheit":
		return Fahrenheit, nil
	case "K", "k", "kelvin", "Kelvin":
		return Kelvin, nil
	case "R", "r", "rankine", "Rankine":
		return Rankine, nil
	}
	return Celsius, fmt.Errorf("owclient: unknown temperature scale %q", s)
}

// ParsePressure maps the conventional pressure unit names.
func ParsePressure(s string) (PressureScale, error) {
	switch s {
	case "", "mbar":
		return Mbar, nil
	case "atm":
		return Atm, nil
	case "mmhg", "mmHg":
		return MmHg, nil
	case "inhg", "inHg":
		return InHg, nil
	case "psi":
		return Psi, nil
	case "pa", "Pa":
		return Pa, nil
	}
	return Mbar, fmt.Errorf("owclient: unknown pressure scale %q", s)
}

// ParseIDFormat maps the f/i/c spellings used on the command line.
func ParseIDFormat(s string) (IDFormat, error) {
	switch s {
	case "", "f.i":
		return FdotI, nil
	case "fi":
		return FI, nil
	case "f.i.c":
		return FdotIdotC, nil
	case "f.ic":
		return FdotIC, nil
	case "fi.c":
		return FIdotC, nil
	case "fic":
		return FIC, nil
	}
	return FdotI, fmt.Errorf("owclient: unknown id format %q", s)
}

// Config holds the per-client settings. It outlives every request and
// response; the flag word is derived from it fresh on each call.
type Config struct {
	// Server is the owserver host:port address.
	Server string

	Temperature TemperatureScale
	Pressure    PressureScale
	Format      IDFormat

	// Hex renders values as hex byte pairs instead of text.
	Hex bool
	// Bare suppresses bus.* and other synthetic entries server-side.
	Bare bool
	// Slash asks for the DIRALLSLASH/GETSLASH variants, marking
	// directories with a trailing slash.
	Slash bool
	// Prune filters the standard convenience properties from listings.
	Prune bool
	// Persistence sets the wire flag asking the server to hold the
	// connection open. The client still dials per call; see Client.
	Persistence bool
	// Uncached asks the server to bypass its cache.
	Uncached bool

	// ReadSize and ReadOffset bound partial reads when non-zero.
	ReadSize   int32
	ReadOffset int32
}

// Flags computes the protocol flag word. Pure function of the config:
// recomputed on every request, never cached across mutation.
func (c Config) Flags() uint32 {
	var flags uint32

	if !c.Bare {
		flags |= protocol.FlagBusRet
	}
	if c.Persistence {
		flags |= protocol.FlagPersistence
	}
	if c.Uncached {
		flags |= protocol.FlagUncached
	}

	switch c.Temperature {
	case Fahrenheit:
		flags |= protocol.FlagTempFahrenheit
	case Kelvin:
		flags |= protocol.FlagTempKelvin
	case Rankine:
		flags |= protocol.FlagTempRankine
	default:
		flags |= protocol.FlagTempCelsius
	}

	switch c.Pressure {
	case Atm:
		flags |= protocol.FlagPressureAtm
	case MmHg:
		flags |= protocol.FlagPressureMmHg
	case InHg:
		flags |= protocol.FlagPressureInHg
	case Psi:
		flags |= protocol.FlagPressurePsi
	case Pa:
		flags |= protocol.FlagPressurePa
	default:
		flags |= protocol.FlagPressureMbar
	}

	switch c.Format {
	case FI:
		flags |= protocol.FlagFormatFI
	case FdotIdotC:
		flags |= protocol.FlagFormatFdotIdotC
	case FdotIC:
		flags |= protocol.FlagFormatFdotIC
	case FIdotC:
		flags |= protocol.FlagFormatFIdotC
	case FIC:
		flags |= protocol.FlagFormatFIC
	default:
		flags |= protocol.FlagFormatFdotI
	}

	return flags
}
