/*
 *   Copyright (c) 2026 Arcology Network

 *   This program is free software: you can redistribute it and/or modify
 *   it under the terms of the GNU General Public License as published by
 *   the Free Software Foundation, either version 3 of the License, or
 *   (at your option) any later version.

 *   This program is distributed in the hope that it will be useful,
 *   but WITHOUT ANY WARRANTY; without even the implied warranty of
 *   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *   GNU General Public License for more details.

 *   You should have received a copy of the GNU General Public License
 *   along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter mirrors a Report as Prometheus gauges, served over /metrics.
// This is additive telemetry: the CLI's primary contract (stdout summary,
// optional CSV blocks, optional binary dump, exit code) is unchanged
// whether or not an Exporter is ever started.
type Exporter struct {
	registry    *prometheus.Registry
	utilization *prometheus.GaugeVec
	throughput  *prometheus.GaugeVec
	avgThru     prometheus.Gauge
}

// NewExporter builds an Exporter and registers its collectors.
func NewExporter() *Exporter {
	reg := prometheus.NewRegistry()
	e := &Exporter{
		registry: reg,
		utilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "txsched_lane_utilization_percent",
			Help: "Per-lane busy-time / wall-time percentage.",
		}, []string{"lane"}),
		throughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "txsched_stage_throughput",
			Help: "Latest sliding-window throughput per stage, in events/sec.",
		}, []string{"stage"}),
		avgThru: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "txsched_avg_throughput",
			Help: "Completed transactions divided by wall-clock duration.",
		}),
	}
	reg.MustRegister(e.utilization, e.throughput, e.avgThru)
	return e
}

// Update republishes r's numbers on the exporter's gauges.
func (e *Exporter) Update(r *Report) {
	for lane, pct := range r.Utilization {
		e.utilization.WithLabelValues(strconv.Itoa(lane)).Set(pct)
	}
	for _, stage := range stageOrder {
		series := r.Throughput[stage]
		if len(series) == 0 {
			continue
		}
		e.throughput.WithLabelValues(stageNames[stage]).Set(series[len(series)-1].Throughput)
	}
	e.avgThru.Set(r.AvgThroughput)
}

// Handler returns the promhttp handler serving this Exporter's registry.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

