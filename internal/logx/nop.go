package logx

// nop discards everything. Services take it in tests that assert nothing
// about logging.
type nop struct{}

// Nop returns a Logger that discards all entries.
func Nop() Logger { return nop{} }

func (nop) Debug(string, ...Field) {}
func (nop) Info(string, ...Field)  {}
func (nop) Warn(string, ...Field)  {}
func (nop) Error(string, ...Field) {}
func (nop) With(...Field) Logger   { return nop{} }

var _ Logger = nop{}
