package metrics

import (
	"consensussim/interfaces"
	"io"
	"time"

	"github.com/rcrowley/go-metrics"
)

var config interfaces.IConfig
var registry metrics.Registry

func Initialize(conf interfaces.IConfig) {
	config = conf
	registry = metrics.NewRegistry()
}

func NameFormat(name interfaces.IMetricName, id string) string {
	return name.String() + "_" + id
}

func enabled() bool {
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	return config == nil || config.UseMetrics()
}

func Timer(name string, value time.Duration) {
	if enabled() {
		metrics.GetOrRegisterTimer(name+"_Timer", registry).Update(value)
	}
}

func Gauge(name string, value int64) {
	if enabled() {
		metrics.GetOrRegisterGauge(name+"_Gauge", registry).Update(value)
	}
}

func FloatGauge(name string, value float64) {
	if enabled() {
		metrics.GetOrRegisterGaugeFloat64(name+"_FloatGauge", registry).Update(value)
	}
}

func Counter(name string, value int64) {
	if enabled() {
		if value > 0 {
			metrics.GetOrRegisterCounter(name+"_Counter", registry).Inc(value)
		} else {
			metrics.GetOrRegisterCounter(name+"_Counter", registry).Dec(value * -1)
		}
	}
}

func WriteToFile(writer io.Writer) {
	metrics.WriteJSONOnce(registry, writer)
}
