package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"elementhub/internal/live"
	"elementhub/pkg/logger"
)

func main() {
	var (
		addr       = flag.String("addr", "127.0.0.1:7070", "TCP live server address")
		categories = flag.String("category", "", "comma-separated categories")
		states     = flag.String("state", "", "comma-separated physical states")
		periods    = flag.String("period", "", "comma-separated periods")
		blocks     = flag.String("block", "", "comma-separated blocks")
		active     = flag.Int("active", 0, "atomic number to select")
		pretty     = flag.Bool("pretty", true, "pretty print JSON messages")
		follow     = flag.Bool("follow", false, "keep reading and reconnect after the replies")
	)
	flag.Parse()

	_ = logger.Initialize(false, false)
	defer logger.Sync()
	log := logger.Component("live-client")

	msgs := requests(*categories, *states, *periods, *blocks, *active)
	for {
		err := run(*addr, msgs, os.Stdout, *pretty, !*follow)
		if !*follow {
			if err != nil {
				log.Fatalw("session failed", logger.FieldAddress, *addr, logger.FieldError, err)
			}
			return
		}
		log.Warnw("disconnected", logger.FieldAddress, *addr, logger.FieldError, err)
		time.Sleep(time.Second)
	}
}

// requests builds the messages sent after connecting.
func requests(categories, states, periods, blocks string, active int) []live.ClientMessage {
	var msgs []live.ClientMessage
	if categories != "" || states != "" || periods != "" || blocks != "" {
		msgs = append(msgs, live.ClientMessage{
			Type: live.TypeFilters,
			Filters: &live.FilterPayload{
				Categories: list(categories),
				States:     list(states),
				Periods:    list(periods),
				Blocks:     list(blocks),
			},
		})
	}
	if active > 0 {
		msgs = append(msgs, live.ClientMessage{Type: live.TypeSelect, AtomicNumber: active})
	}
	return msgs
}

func list(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return []string{s}
}

// run prints the welcome, the initial table and one reply per message. With
// once unset it keeps printing until the server closes the connection.
func run(addr string, msgs []live.ClientMessage, out io.Writer, pretty, once bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "dial %s", addr)
	}
	defer conn.Close()

	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	expect := 2 + len(msgs)
	for _, m := range msgs {
		b, err := json.Marshal(m)
		if err != nil {
			return err
		}
		if _, err := conn.Write(append(b, '\n')); err != nil {
			return errors.Wrap(err, "send")
		}
	}

	seen := 0
	for sc.Scan() {
		if err := printLine(out, sc.Bytes(), pretty); err != nil {
			return err
		}
		seen++
		if once && seen == expect {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return errors.New("connection closed by server")
}

func printLine(out io.Writer, line []byte, pretty bool) error {
	if !pretty {
		_, err := fmt.Fprintln(out, string(line))
		return err
	}
	var obj map[string]any
	if err := json.Unmarshal(line, &obj); err != nil {
		// not JSON, print raw
		_, err := fmt.Fprintln(out, string(line))
		return err
	}
	b, _ := json.MarshalIndent(obj, "", "  ")
	_, err := fmt.Fprintln(out, string(b))
	return err
}
