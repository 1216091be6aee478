package symbols

import "strconv"

// ScopeID and SymbolID index the program-wide arenas of a Table. Units share
// the arenas, so an ID stays valid across units until the table is dropped.
type (
	ScopeID  uint32
	SymbolID uint32
)

// Zero is reserved in both arenas.
const (
	NoScopeID  ScopeID  = 0
	NoSymbolID SymbolID = 0
)

func (id ScopeID) IsValid() bool  { return id != NoScopeID }
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// String renders the ID for trace details, "-" when unset.
func (id ScopeID) String() string {
	if !id.IsValid() {
		return "scope#-"
	}
	return "scope#" + strconv.FormatUint(uint64(id), 10)
}

func (id SymbolID) String() string {
	if !id.IsValid() {
		return "sym#-"
	}
	return "sym#" + strconv.FormatUint(uint64(id), 10)
}
