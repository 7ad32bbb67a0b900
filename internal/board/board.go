package board

import (
	"encoding/json"
	"strings"
)

// Variant identifies a family of boards that share avrdude parameters.
type Variant int

const (
	Unknown Variant = iota
	Uno
	Nano
	Mega
	BotNRoll
	Mbot
	Bob3
)

var variantNames = map[Variant]string{
	Unknown:  "unknown",
	Uno:      "uno",
	Nano:     "nano",
	Mega:     "mega",
	BotNRoll: "botnroll",
	Mbot:     "mbot",
	Bob3:     "bob3",
}

// Variants lists every known variant except Unknown, in display order.
var Variants = []Variant{Uno, Nano, Mega, BotNRoll, Mbot, Bob3}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return variantNames[Unknown]
}

// ParseVariant maps a board name to its variant. Matching ignores case and
// surrounding whitespace; anything unrecognised is Unknown.
func ParseVariant(name string) Variant {
	name = strings.ToLower(strings.TrimSpace(name))
	for v, n := range variantNames {
		if n == name {
			return v
		}
	}
	return Unknown
}

// Params is the avrdude parameter triple for a variant.
type Params struct {
	Part     string // -p<part>
	Protocol string // -c<programmer>
	Erase    string // "-e" or empty
}

// DefaultParams is used by every variant without its own entry
// (Uno, Nano, Bot'n Roll, mBot and anything unknown).
var DefaultParams = Params{Part: "-patmega328p", Protocol: "-carduino"}

var paramTable = map[Variant]Params{
	Mega: {Part: "-patmega2560", Protocol: "-cwiring"},
	Bob3: {Part: "-patmega88", Protocol: "-cavrisp2", Erase: "-e"},
}

// SelectParameters returns the parameter triple for v. It is total: variants
// missing from the table get DefaultParams.
func SelectParameters(v Variant) Params {
	if p, ok := paramTable[v]; ok {
		return p
	}
	return DefaultParams
}

// Board is a connected board as the rest of the system sees it.
type Board struct {
	Variant Variant
	Name    string
}

// DeviceInfo is the identification payload reported for a board.
type DeviceInfo struct {
	FirmwareName string `json:"firmwarename"`
	Robot        string `json:"robot"`
	BrickName    string `json:"brickname"`
}

// DeviceInfo describes b. Firmware and robot names are both the variant name.
func (b Board) DeviceInfo() DeviceInfo {
	return DeviceInfo{
		FirmwareName: b.Variant.String(),
		Robot:        b.Variant.String(),
		BrickName:    b.Name,
	}
}

// DeviceInfoJSON returns DeviceInfo encoded as a JSON object.
func (b Board) DeviceInfoJSON() ([]byte, error) {
	return json.Marshal(b.DeviceInfo())
}
