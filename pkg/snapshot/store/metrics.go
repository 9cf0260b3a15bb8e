// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	savesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cdiff_snapshot_saves_total",
			Help: "Total number of snapshots saved",
		},
	)

	loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdiff_snapshot_loads_total",
			Help: "Total number of snapshot loads by result",
		},
		[]string{"result"},
	)

	prunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cdiff_snapshot_pruned_total",
			Help: "Total number of snapshot files removed by retention",
		},
	)
)
