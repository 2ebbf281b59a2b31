package main

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/lgbarn/connect4-go/internal/game"
	"github.com/lgbarn/connect4-go/internal/output"
)

type selfplayGameJSON struct {
	Opening string `json:"opening"`
	AFirst  bool   `json:"aFirst"`
	Result  string `json:"result"`
	Moves   string `json:"moves"`
}

type selfplayJSON struct {
	Games       int                `json:"games"`
	DepthA      int                `json:"depthA"`
	DepthB      int                `json:"depthB"`
	WinsA       int                `json:"winsA"`
	WinsB       int                `json:"winsB"`
	Draws       int                `json:"draws"`
	MeanPlies   float64            `json:"meanPlies"`
	StdDevPlies float64            `json:"stdDevPlies"`
	Results     []selfplayGameJSON `json:"results"`
}

func runSelfplay(ctx context.Context, e *env, args []string) error {
	var opts selfplayOptions
	fs := newSelfplayFlags(&opts, e.stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	t := game.NewTournament(opts.games, opts.depthA, opts.depthB)
	t.OpeningPlies = opts.opening
	t.FeatureThreshold = opts.threshold
	t.Workers = opts.workers
	t.Seed = expandSeed(opts.seed)
	t.Log = e.log
	rep, err := t.Run(ctx)
	if err != nil {
		return err
	}

	if opts.json {
		out := selfplayJSON{
			Games:       rep.Games,
			DepthA:      t.DepthA,
			DepthB:      t.DepthB,
			WinsA:       rep.WinsA,
			WinsB:       rep.WinsB,
			Draws:       rep.Draws,
			MeanPlies:   rep.MeanPlies,
			StdDevPlies: rep.StdDevPlies,
			Results:     make([]selfplayGameJSON, len(rep.Results)),
		}
		for i, r := range rep.Results {
			out.Results[i] = selfplayGameJSON{
				Opening: r.Opening,
				AFirst:  r.AFirst,
				Result:  r.Outcome.String(),
				Moves:   r.Outcome.Moves,
			}
		}
		return output.WriteJSON(e.stdout, out)
	}

	for i, r := range rep.Results {
		first := "B"
		if r.AFirst {
			first = "A"
		}
		fmt.Fprintf(e.stdout, "game %d\t%s first\t%s\t%s\n", i+1, first, r.Outcome, r.Outcome.Moves)
	}
	_, err = fmt.Fprintf(e.stdout,
		"A (depth %d) %d, B (depth %d) %d, draws %d; length %.1f ± %.1f plies\n",
		t.DepthA, rep.WinsA, t.DepthB, rep.WinsB, rep.Draws, rep.MeanPlies, rep.StdDevPlies)
	return err
}

// expandSeed turns a numeric seed into the 32 bytes the opening generator
// needs. Zero means no seed.
func expandSeed(seed uint64) []byte {
	if seed == 0 {
		return nil
	}
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint64(buf, seed)
	return buf
}
