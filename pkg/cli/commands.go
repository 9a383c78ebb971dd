// Package cli is the command-line front end: argument parsing, env-file
// configuration, per-phase timing output, optional terminal preview, and the
// self-update flow. All filtering work is delegated to pkg/parimg.
package cli

// ArgSpec describes one argument or flag of a command, for help text.
type ArgSpec struct {
	Name        string
	Type        string // "int", "path", ...
	Required    bool
	Default     string
	Description string
}

// CommandSpec defines a single subcommand and its arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string
	Description string
}

// Commands is the authoritative list of subcommands. Keep it synchronized
// with the dispatch in Run.
var Commands = []CommandSpec{
	{
		Name: "blur",
		Args: []ArgSpec{
			{"r", "int", false, "2", "gaussian radius (sigma = radius/3)"},
			{"w", "int", false, "", "worker count (default PIMG_WORKERS or CPU count)"},
			{"input", "path", true, "", "source image"},
			{"output", "path", true, "", "destination image"},
		},
		Usage:       "blur [-r radius] [-w workers] <input> <output>",
		Description: "Separable Gaussian blur, parallelized over row partitions.",
	},
	{
		Name: "kuwahara",
		Args: []ArgSpec{
			{"r", "int", false, "4", "quadrant window radius"},
			{"w", "int", false, "", "worker count (default PIMG_WORKERS or CPU count)"},
			{"input", "path", true, "", "source image"},
			{"output", "path", true, "", "destination image"},
		},
		Usage:       "kuwahara [-r radius] [-w workers] <input> <output>",
		Description: "Edge-preserving Kuwahara filter using summed-area tables.",
	},
	{
		Name: "pi",
		Args: []ArgSpec{
			{"n", "int", false, "10000000", "total sample count"},
			{"w", "int", false, "", "worker count (default PIMG_WORKERS or CPU count)"},
		},
		Usage:       "pi [-n samples] [-w workers]",
		Description: "Monte Carlo pi estimation on a deterministic per-worker LCG.",
	},
	{
		Name:        "update",
		Usage:       "update",
		Description: "Check GitHub releases and self-update the binary.",
	},
}
