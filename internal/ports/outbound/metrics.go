package outbound

// KitchenMetrics records reconciliation outcomes
type KitchenMetrics interface {
	ListGenerated(mandatory, optional int)
	ListEmpty()
	ReferencesSkipped(kind string, n int)
	StockAdjusted(source string, items int)
	LockWait(seconds float64)
}

// NopMetrics discards everything
type NopMetrics struct{}

func (NopMetrics) ListGenerated(int, int)        {}
func (NopMetrics) ListEmpty()                    {}
func (NopMetrics) ReferencesSkipped(string, int) {}
func (NopMetrics) StockAdjusted(string, int)     {}
func (NopMetrics) LockWait(float64)              {}
