package avrdude

import "github.com/buckleypaul/avrup/internal/board"

// Args builds the avrdude argument vector:
//
//	-v -D <part> <protocol> -Uflash:w:<firmware>:i -C<config> -P<port> [<erase>]
//
// avrdude parses some of these positionally, so the order is fixed. An empty
// erase flag is left out rather than passed as an empty argument.
func Args(p board.Params, firmware, configPath, portPath string) []string {
	args := []string{
		"-v",
		"-D",
		p.Part,
		p.Protocol,
		"-Uflash:w:" + firmware + ":i",
		"-C" + configPath,
		"-P" + portPath,
	}
	if p.Erase != "" {
		args = append(args, p.Erase)
	}
	return args
}
