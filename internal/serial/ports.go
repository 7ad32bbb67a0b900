package serial

import (
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"

	"github.com/buckleypaul/avrup/internal/board"
)

// PortInfo holds details about a serial port.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// ShortName strips the /dev/ prefix so the name can be handed to the
// uploader, which adds the prefix back for the host.
func (p PortInfo) ShortName() string {
	return strings.TrimPrefix(p.Name, "/dev/")
}

// usbID is a lowercase VID:PID pair.
type usbID struct {
	vid, pid string
}

// knownBoards maps USB ids of common AVR boards and their USB-serial bridges
// to the variant they usually carry. Bridge chips (FTDI, CH340, CP210x) are
// found on many boards, so they map to Unknown and only mark the port as a
// candidate.
//
// Bob3 is flashed through an AVRISP mkII (03eb:2104). That programmer is a
// libusb device and most hosts do not list it as a serial port, so Bob3 is
// usually picked by hand; the entry only helps where the enumerator reports it.
var knownBoards = map[usbID]board.Variant{
	{"2341", "0043"}: board.Uno,
	{"2341", "0001"}: board.Uno,
	{"2a03", "0043"}: board.Uno,
	{"2341", "0243"}: board.Uno,
	{"2341", "0010"}: board.Mega,
	{"2341", "0042"}: board.Mega,
	{"2a03", "0010"}: board.Mega,
	{"2a03", "0042"}: board.Mega,
	{"2341", "0242"}: board.Mega,
	{"0403", "6001"}: board.Unknown,
	{"1a86", "7523"}: board.Unknown,
	{"10c4", "ea60"}: board.Unknown,
	{"03eb", "2104"}: board.Bob3,
}

func lookup(p PortInfo) (board.Variant, bool) {
	v, ok := knownBoards[usbID{strings.ToLower(p.VID), strings.ToLower(p.PID)}]
	return v, ok
}

// GuessVariant returns the variant usually found behind p's USB id, or
// Unknown when the id is not specific to one board family.
func GuessVariant(p PortInfo) board.Variant {
	v, _ := lookup(p)
	return v
}

// IsCandidate reports whether p looks like an AVR board or programmer.
func IsCandidate(p PortInfo) bool {
	if !p.IsUSB {
		return false
	}
	_, ok := lookup(p)
	return ok
}

// Candidates filters ports down to likely AVR boards, sorted by name.
func Candidates(ports []PortInfo) []PortInfo {
	var result []PortInfo
	for _, p := range ports {
		if IsCandidate(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// ListPorts returns available serial ports.
func ListPorts() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	var result []PortInfo
	for _, p := range ports {
		result = append(result, PortInfo{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		})
	}
	return result, nil
}
