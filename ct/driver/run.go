package main

import (
	"fmt"
	"math"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
	"pgregory.net/rand"

	"github.com/Zeegaths/keth/ct"
	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/diff"
	cliUtils "github.com/Zeegaths/keth/ct/driver/cli"
	"github.com/Zeegaths/keth/ct/gen"
	"github.com/Zeegaths/keth/ct/st"
)

var RunCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Run conformance tests on a state implementation",
	ArgsUsage: "<runtime>",
	Flags: []cli.Flag{
		cliUtils.FilterFlag,
		cliUtils.JobsFlag,
		cliUtils.SeedFlag,
		cliUtils.CasesFlag,
		cliUtils.MaxErrorsFlag,
	},
})

var runtimes = map[string]ct.Runtime{
	"loopback":     diff.NewLoopbackRuntime(),
	"loopback-128": diff.NewWidthLimitedLoopbackRuntime(128),
}

const progressReportPeriod = 5 * time.Second

func doRun(context *cli.Context) error {
	runtimeIdentifier := "loopback"
	if context.Args().Len() >= 1 {
		runtimeIdentifier = context.Args().Get(0)
	}
	runtime, ok := runtimes[runtimeIdentifier]
	if !ok {
		return fmt.Errorf("invalid runtime identifier, use one of: %v", maps.Keys(runtimes))
	}

	filter, err := cliUtils.FilterFlag.Fetch(context)
	if err != nil {
		return err
	}
	jobCount := cliUtils.JobsFlag.Fetch(context)
	seed := cliUtils.SeedFlag.Fetch(context)
	cases := cliUtils.CasesFlag.Fetch(context)
	maxErrors := cliUtils.MaxErrorsFlag.Fetch(context)
	if maxErrors <= 0 {
		maxErrors = math.MaxInt
	}

	stateOps := filterOps(diff.StateOps(), filter)
	transientOps := filterOps(diff.TransientOps(), filter)
	if len(stateOps)+len(transientOps) == 0 {
		return fmt.Errorf("the filter matches no operation, see the list command")
	}

	limits := gen.LimitsFromEnv()
	issuesCollector := cliUtils.IssuesCollector{}
	var processed atomic.Int64

	fmt.Printf("Starting conformance tests with seed %d ...\n", seed)
	start := time.Now()
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressReportPeriod)
		defer ticker.Stop()
		var last int64
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				current := processed.Load()
				rate := float64(current-last) / progressReportPeriod.Seconds()
				last = current
				relativeTime := time.Since(start)
				fmt.Printf(
					"[t=%4d:%02d] - Processing ~%s operations per second, total %d, found issues %d\n",
					int(relativeTime.Seconds())/60, int(relativeTime.Seconds())%60,
					unitconv.FormatPrefix(rate, unitconv.SI, 0), current, issuesCollector.NumIssues(),
				)
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < jobCount; i++ {
		wg.Add(1)
		go func(job int) {
			defer wg.Done()
			rnd := rand.New(seed + uint64(job))
			harness := diff.NewHarness(runtime)
			stateGenerator := gen.NewStateGenerator(limits)
			transientGenerator := gen.NewTransientStorageGenerator(limits)

			for c := job; c < cases; c += jobCount {
				if issuesCollector.NumIssues() >= maxErrors {
					return
				}

				if len(stateOps) > 0 {
					state, err := stateGenerator.Generate(rnd)
					if err != nil {
						issuesCollector.AddIssue(nil, fmt.Errorf("failed to generate state: %w", err))
						continue
					}
					args := sampleArgs(rnd, state, limits)
					for _, op := range stateOps {
						if err := harness.RunStateOp(op, state, args); err != nil {
							issuesCollector.AddIssue(state, err)
						}
						processed.Add(1)
					}
				}

				if len(transientOps) > 0 {
					transient, err := transientGenerator.Generate(rnd)
					if err != nil {
						issuesCollector.AddIssue(nil, fmt.Errorf("failed to generate transient storage: %w", err))
						continue
					}
					args := sampleTransientArgs(rnd, transient)
					for _, op := range transientOps {
						if err := harness.RunTransientOp(op, transient, args); err != nil {
							issuesCollector.AddIssue(transient, err)
						}
						processed.Add(1)
					}
				}
			}
		}(i)
	}
	wg.Wait()
	close(done)

	if issuesCollector.NumIssues() == 0 {
		fmt.Printf("All %d operations passed successfully!\n", processed.Load())
		return nil
	}
	issuesCollector.PrintIssues()
	return fmt.Errorf("failed to pass %d test cases", issuesCollector.NumIssues())
}

func filterOps(ops []string, filter *regexp.Regexp) []string {
	var res []string
	for _, op := range ops {
		if filter.MatchString(op) {
			res = append(res, op)
		}
	}
	return res
}

// sampleArgs picks arguments for one test case. Addresses present in the
// state are preferred so that operations hit existing accounts; misses are
// still sampled to exercise the failure paths.
func sampleArgs(rnd *rand.Rand, state *st.State, limits gen.Limits) diff.Args {
	address := RandomAddress(rnd)
	if addresses := state.MainTrie.Keys(); len(addresses) > 0 && rnd.Intn(4) > 0 {
		address = addresses[rnd.Intn(len(addresses))]
	}
	key := RandomBytes32(rnd)
	if trie, found := state.StorageTries[address]; found && rnd.Intn(2) == 0 {
		keys := trie.Keys()
		key = keys[rnd.Intn(len(keys))]
	}
	return diff.Args{
		Address: address,
		Key:     key,
		Value:   RandU256(rnd),
		Account: gen.RandomAccount(rnd, limits),
	}
}

func sampleTransientArgs(rnd *rand.Rand, transient *st.TransientStorage) diff.Args {
	address := RandomAddress(rnd)
	if addresses := maps.Keys(transient.Tries); len(addresses) > 0 && rnd.Intn(4) > 0 {
		address = addresses[rnd.Intn(len(addresses))]
	}
	key := RandomBytes32(rnd)
	if trie, found := transient.Tries[address]; found && rnd.Intn(2) == 0 {
		keys := trie.Keys()
		key = keys[rnd.Intn(len(keys))]
	}
	return diff.Args{
		Address: address,
		Key:     key,
		Value:   RandU256(rnd),
	}
}
