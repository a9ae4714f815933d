// Command diascribe turns meeting recordings into speaker-attributed
// transcripts by combining a transcription sidecar with a diarization
// sidecar and aligning their output.
package main

import (
	"fmt"
	"io"
	"os"

	_ "github.com/skillsenselab/diascribe/storage/local"
	_ "github.com/skillsenselab/diascribe/storage/s3"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage(os.Stderr)
		return 2
	}
	switch args[0] {
	case "process":
		return runProcess(args[1:])
	case "serve":
		return runServe(args[1:])
	case "watch":
		return runWatch(args[1:])
	case "version":
		return runVersion()
	case "help", "-h", "--help":
		usage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "diascribe: unknown command %q\n\n", args[0])
		usage(os.Stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: diascribe <command> [flags]

Commands:
  process   Transcribe and diarize a single recording
  serve     Run the HTTP API server
  watch     Watch a directory and process new recordings
  version   Print version information

Run "diascribe <command> -h" for command flags.
`)
}
