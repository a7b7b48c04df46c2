// Package debug renders analysis results as debug artefacts: a PNG of the
// contact signal (gonum/plot) and an interactive HTML chart (go-echarts).
//
// Both read only the diagnostics already carried by a result, so a cached
// result can be plotted without re-running the pipeline.
package debug
