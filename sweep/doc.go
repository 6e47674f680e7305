/*
Package sweep implements the concurrency-bounded scheduling engine of ipchk.

A [Sweeper] takes targets from a [targets.Enumerator] in waves of at most its
concurrency limit, probes all targets of a wave concurrently, and waits for the
whole wave to finish before starting the next one. This keeps the number of
in-flight probes bounded even when sweeping large ranges, such as a /16 with
its 65536 targets.

	          +-------+          +-----------+
	targets-->| waves +--probe-->| Collector +--Sort-->[]Outcome
	          +-------+  ...     +-----------+
	                   --probe-->

The outcomes of the concurrent probes converge on a single channel drained by a
[Collector]. After the last wave, the collected outcomes are [Sort]ed in
ascending order of the targets' numeric IPv4 address values, regardless of the
order in which the probes completed.

Each probe produces exactly one outcome, even when the probe panics: the target
then simply is down.

# Acknowledgements

Under its hood, [Sweeper] leverages [gammazero/workerpool] as the limiting
goroutine pool.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package sweep
