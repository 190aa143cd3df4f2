package app

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/aquamind/aquamind/internal/types"
)

// readLines feeds trimmed stdin lines to the interactive loop. The channel
// closes on EOF; a cancelled context stops the reader at the next line.
func readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			case lines <- strings.TrimSpace(scanner.Text()):
			}
		}
	}()
	return lines
}

func jsonIndent(record *types.AnalysisRecord) ([]byte, error) {
	return json.MarshalIndent(record, "", "  ")
}
