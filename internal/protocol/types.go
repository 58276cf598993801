package protocol

import "fmt"

// MessageType identifies an owserver request operation. The numeric
// assignments are fixed by the owserver contract and must never shift.
type MessageType int32

const (
	MsgNop         MessageType = 1
	MsgRead        MessageType = 2
	MsgWrite       MessageType = 3
	MsgDir         MessageType = 4
	MsgSize        MessageType = 5
	MsgPresent     MessageType = 6
	MsgDirAll      MessageType = 7
	MsgGet         MessageType = 8
	MsgDirAllSlash MessageType = 9
	MsgGetSlash    MessageType = 10
)

var msgTypeNames = map[MessageType]string{
	MsgNop:         "NOP",
	MsgRead:        "READ",
	MsgWrite:       "WRITE",
	MsgDir:         "DIR",
	MsgSize:        "SIZE",
	MsgPresent:     "PRESENT",
	MsgDirAll:      "DIRALL",
	MsgGet:         "GET",
	MsgDirAllSlash: "DIRALLSLASH",
	MsgGetSlash:    "GETSLASH",
}

func (t MessageType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int32(t))
}

// Flag word bit assignments. Fields are mutually exclusive within their
// sub-field; independent flags own one bit each. Assignments are append-only:
// new values take previously-zero bits, existing bits never renumber.
const (
	// Device-ID format, bits 24..26.
	FlagFormatFdotI     uint32 = 0x00000000 // f.i
	FlagFormatFI        uint32 = 0x01000000 // fi
	FlagFormatFdotIdotC uint32 = 0x02000000 // f.i.c
	FlagFormatFdotIC    uint32 = 0x03000000 // f.ic
	FlagFormatFIdotC    uint32 = 0x04000000 // fi.c
	FlagFormatFIC       uint32 = 0x05000000 // fic

	// Temperature scale, bits 16..17.
	FlagTempCelsius    uint32 = 0x00000000
	FlagTempFahrenheit uint32 = 0x00010000
	FlagTempKelvin     uint32 = 0x00020000
	FlagTempRankine    uint32 = 0x00030000

	// Pressure scale, bits 18..20.
	FlagPressureMbar uint32 = 0x00000000
	FlagPressureAtm  uint32 = 0x00040000
	FlagPressureMmHg uint32 = 0x00080000
	FlagPressureInHg uint32 = 0x000C0000
	FlagPressurePsi  uint32 = 0x00100000
	FlagPressurePa   uint32 = 0x00140000

	// Independent flags.
	FlagOwnet       uint32 = 0x00000100
	FlagUncached    uint32 = 0x00000020
	FlagSafemode    uint32 = 0x00000010
	FlagAlias       uint32 = 0x00000008
	FlagPersistence uint32 = 0x00000004
	FlagBusRet      uint32 = 0x00000002
)

// Masks for the mutually-exclusive sub-fields.
const (
	FormatMask      uint32 = 0x07000000
	TemperatureMask uint32 = 0x00030000
	PressureMask    uint32 = 0x001C0000
)

const (
	// RequestVersion is always sent as the header version field.
	RequestVersion = 0

	// DefaultSize is the response size hint for reads. Arbitrary upper
	// bound, matching the C owlib implementation.
	DefaultSize = 65536

	// DefaultServer is the conventional owserver address.
	DefaultServer = "localhost:4304"
)
