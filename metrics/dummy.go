package metrics

// Dummy discards everything.
var Dummy Metrics = dummy{}

type dummy struct{}

func (dummy) WithPrefix(string) Metrics     { return Dummy }
func (dummy) Counter(string, Labels) Counter { return DummyCounter }
func (dummy) Gauge(string, Labels) Gauge     { return DummyGauge }

var DummyCounter Counter = dummyCounter{}

type dummyCounter struct{}

func (dummyCounter) Inc()        {}
func (dummyCounter) Add(float64) {}

var DummyGauge Gauge = dummyGauge{}

type dummyGauge struct{}

func (dummyGauge) Set(float64) {}
func (dummyGauge) Inc()        {}
func (dummyGauge) Dec()        {}
func (dummyGauge) Add(float64) {}
func (dummyGauge) Sub(float64) {}
