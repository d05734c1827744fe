// Command zoomline-cli builds a synthetic trace, pushes it through a
// Trace's tracks and zoom indexes, and prints per-track bucketed event
// counts the way a timeline view would query them while zooming.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/grafana/zoomline"
	"github.com/grafana/zoomline/pkg/aggregate"
	"github.com/grafana/zoomline/pkg/driver"
	"github.com/grafana/zoomline/pkg/iforest"
	"github.com/grafana/zoomline/pkg/metrics"
	"github.com/grafana/zoomline/pkg/nanos"
	"github.com/grafana/zoomline/pkg/trace"
	zlog "github.com/grafana/zoomline/pkg/util/log"
)

var (
	numTracks  int
	numEvents  int
	bucketStep uint64
	seed       int64
	logLevel   string
)

func init() {
	flag.IntVar(&numTracks, "tracks", 4, "number of synthetic tracks to generate")
	flag.IntVar(&numEvents, "events", 5000, "number of events per track")
	flag.Uint64Var(&bucketStep, "bucket-step", 1_000_000, "bucket width in nanoseconds")
	flag.Int64Var(&seed, "seed", 1, "random seed for synthetic event generation")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")
}

func main() {
	flag.Parse()

	if err := zlog.SetLevel(logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runID := uuid.New()
	level.Info(zlog.Logger).Log("msg", "starting synthetic run", "run_id", runID, "tracks", numTracks, "events_per_track", numEvents)

	started := time.Now()
	tr := metrics.NewInstrumentedTrace[int]()
	rng := rand.New(rand.NewSource(seed))

	tracks := make([]*zoomline.TrackInfo[int], 0, numTracks)
	for i := 0; i < numTracks; i++ {
		info := tr.NewTrack()
		ts := uint64(0)
		for j := 0; j < numEvents; j++ {
			ts += uint64(rng.Intn(1000)) + 1
			dur := uint64(rng.Intn(500))
			tr.Push(info, trace.Event[int]{
				Timestamp: nanos.New(ts),
				Duration:  nanos.New(dur),
			})
		}
		tr.Finalize(info)
		tracks = append(tracks, info)
	}

	level.Info(zlog.Logger).Log("msg", "generated synthetic trace", "elapsed", time.Since(started))

	start, end, ok := tr.TimeBounds()
	if !ok {
		fmt.Println("trace is empty")
		return
	}
	fmt.Printf("window: [%s, %s)  span: %s ns\n",
		humanize.Comma(int64(start)), humanize.Comma(int64(end)), humanize.Comma(int64(end-start)))

	countOps := aggregate.EventCountOps[int]()

	w := tablewriter.NewWriter(os.Stdout)
	w.SetHeader([]string{"track", "bucket end", "event count"})

	var totalBuckets int
	for i, info := range tracks {
		countIndex := iforest.Build(countOps, info.Track, tr.Pool)

		buckets := metrics.AggregateBySteps(
			countOps,
			tr.Pool,
			info.Track.BlockLocations(),
			countIndex,
			start, end, bucketStep,
			driver.EmitEmpty,
			driver.AlwaysKeep[int64],
		)

		bucketEnd := start
		for _, count := range buckets {
			w.Append([]string{
				fmt.Sprintf("%d", i),
				humanize.Comma(int64(bucketEnd)),
				fmt.Sprintf("%d", count),
			})
			bucketEnd += bucketStep
			totalBuckets++
		}
	}

	w.SetFooter([]string{"", "total buckets", fmt.Sprintf("%d", totalBuckets)})
	w.Render()
}
