// Package forwardsearch implements the `%f`/`%p`/`%l` placeholder
// substitution for the custom `texlab.forwardSearch` command (§6,
// `forwardSearch.executable`/`forwardSearch.args`), grounded on the
// original implementation's placeholder iterator (original_source
// crates/texlab/src/features/forward_search.rs): an argument that
// starts or ends with `"` is passed through verbatim, otherwise `%f`,
// `%p`, `%l` and the `%%` escape are substituted.
package forwardsearch

import "strconv"

// CommandDescription is the external process to run for forward search.
type CommandDescription struct {
	Program string
	Args    []string
}

// Describe substitutes program/args' placeholders with texPath, pdfPath
// and line (0-based, substituted as 1-based per the original's
// `line_number + 1`).
func Describe(program string, args []string, texPath, pdfPath string, line int) CommandDescription {
	lineStr := strconv.Itoa(line + 1)
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, substitute(a, texPath, pdfPath, lineStr))
	}
	return CommandDescription{Program: program, Args: out}
}

func substitute(arg, texFile, pdfFile, lineNumber string) string {
	if len(arg) > 0 && (arg[0] == '"' || arg[len(arg)-1] == '"') {
		return arg
	}
	var b []byte
	for i := 0; i < len(arg); i++ {
		if arg[i] != '%' {
			b = append(b, arg[i])
			continue
		}
		if i+1 >= len(arg) {
			b = append(b, '%')
			break
		}
		switch arg[i+1] {
		case 'f':
			b = append(b, texFile...)
		case 'p':
			b = append(b, pdfFile...)
		case 'l':
			b = append(b, lineNumber...)
		case '%':
			b = append(b, '%')
		default:
			b = append(b, arg[i], arg[i+1])
		}
		i++
	}
	return string(b)
}
