// Package cli provides the interactive prompt and result rendering used by the geoserve commands
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/geoserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler reads prefixes line by line and prints ranked suggestions.
//
// Besides prefixes it understands:
//
//	:near <lat> <lon>   rank by distance from a point
//	:pop                rank by population again
//	:stats              show engine statistics
//	:quit               leave the prompt
type InputHandler struct {
	suggester suggest.ISuggester
	opts      suggest.Options
	in        io.Reader
	out       io.Writer

	lat, lon     *float64
	requestCount int
}

// NewInputHandler creates a prompt over in and out.
func NewInputHandler(suggester suggest.ISuggester, opts suggest.Options, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		suggester: suggester,
		opts:      opts,
		in:        in,
		out:       out,
	}
}

// Start runs the prompt until the input ends or :quit is entered.
func (h *InputHandler) Start() error {
	fmt.Fprintf(h.out, "GeoServe REPL, %s cities loaded\n", formatWithCommas(h.suggester.Stats()["records"]))
	fmt.Fprintln(h.out, "type a city prefix and press Enter (:near <lat> <lon>, :pop, :stats, :quit):")

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := h.handleCommand(line); quit {
				return nil
			}
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleCommand(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":pop":
		h.lat, h.lon = nil, nil
		fmt.Fprintln(h.out, "ranking by population")
	case ":near":
		lat, lon, err := parsePoint(fields[1:])
		if err != nil {
			log.Errorf("Usage: :near <lat> <lon> (%v)", err)
			return false
		}
		h.lat, h.lon = &lat, &lon
		fmt.Fprintf(h.out, "ranking by distance from (%.5f, %.5f)\n", lat, lon)
	case ":stats":
		stats := h.suggester.Stats()
		for _, key := range []string{"records", "names", "duplicates", "skipped"} {
			fmt.Fprintf(h.out, "%-10s %s\n", key, formatWithCommas(stats[key]))
		}
	default:
		log.Errorf("Unknown command: %s", fields[0])
	}
	return false
}

func parsePoint(args []string) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, errors.New("expected two numbers")
	}
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

// handleInput runs one prefix query and prints the result.
func (h *InputHandler) handleInput(prefix string) {
	h.requestCount++
	start := time.Now()

	suggestions, err := h.opts.Run(h.suggester, suggest.Query{
		Prefix:    prefix,
		Latitude:  h.lat,
		Longitude: h.lon,
	})
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		fmt.Fprintf(h.out, "no cities start with '%s'\n", prefix)
		return
	}
	RenderSuggestions(h.out, suggestions)
}
