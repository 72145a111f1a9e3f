package types

// StringFunction identifies a string scalar function.
type StringFunction string

const (
	StrLength        StringFunction = "Length"
	StrUpper         StringFunction = "Upper"
	StrLower         StringFunction = "Lower"
	StrTrim          StringFunction = "Trim"
	StrTrimStart     StringFunction = "TrimStart"
	StrTrimEnd       StringFunction = "TrimEnd"
	StrSubstring     StringFunction = "Substring"
	StrIndexOf       StringFunction = "IndexOf"
	StrReplace       StringFunction = "Replace"
	StrConcat        StringFunction = "Concat"
	StrReverse       StringFunction = "Reverse"
	StrLeft          StringFunction = "Left"
	StrRight         StringFunction = "Right"
	StrIsNullOrEmpty StringFunction = "IsNullOrEmpty"
)

// StringFunc applies a string function to its operands. Character positions
// are zero-based.
type StringFunc struct {
	Func StringFunction
	Args []Node
}

func (*StringFunc) Kind() Kind { return KindStringFunc }
func (*StringFunc) node()      {}

// DateFunction identifies a date scalar function.
type DateFunction string

const (
	DateNow        DateFunction = "Now"
	DateUtcNow     DateFunction = "UtcNow"
	DateToday      DateFunction = "Today"
	DateYear       DateFunction = "Year"
	DateMonth      DateFunction = "Month"
	DateDay        DateFunction = "Day"
	DateHour       DateFunction = "Hour"
	DateMinute     DateFunction = "Minute"
	DateSecond     DateFunction = "Second"
	DateDayOfWeek  DateFunction = "DayOfWeek"
	DateDayOfYear  DateFunction = "DayOfYear"
	DateDate       DateFunction = "Date"
	DateAddYears   DateFunction = "AddYears"
	DateAddMonths  DateFunction = "AddMonths"
	DateAddDays    DateFunction = "AddDays"
	DateAddHours   DateFunction = "AddHours"
	DateAddMinutes DateFunction = "AddMinutes"
	DateAddSeconds DateFunction = "AddSeconds"
	DateDiffDays   DateFunction = "DiffDays"
)

// DateFunc applies a date function to its operands. The Add* functions take
// (date, amount); DiffDays takes (start, end).
type DateFunc struct {
	Func DateFunction
	Args []Node
}

func (*DateFunc) Kind() Kind { return KindDateFunc }
func (*DateFunc) node()      {}

// NumericFunction identifies a numeric scalar function.
type NumericFunction string

const (
	NumAbs      NumericFunction = "Abs"
	NumCeiling  NumericFunction = "Ceiling"
	NumFloor    NumericFunction = "Floor"
	NumRound    NumericFunction = "Round"
	NumTruncate NumericFunction = "Truncate"
	NumPower    NumericFunction = "Power"
	NumSqrt     NumericFunction = "Sqrt"
	NumSign     NumericFunction = "Sign"
	NumExp      NumericFunction = "Exp"
	NumLog      NumericFunction = "Log"
	NumLog10    NumericFunction = "Log10"
)

// NumericFunc applies a numeric function to its operands.
type NumericFunc struct {
	Func NumericFunction
	Args []Node
}

func (*NumericFunc) Kind() Kind { return KindNumericFunc }
func (*NumericFunc) node()      {}

// Arity bounds the operand count of a scalar function. Max of -1 means
// unbounded.
type Arity struct {
	Min int
	Max int
}

// Accepts reports whether n operands satisfy the arity.
func (a Arity) Accepts(n int) bool {
	return n >= a.Min && (a.Max < 0 || n <= a.Max)
}

var stringArity = map[StringFunction]Arity{
	StrLength:        {1, 1},
	StrUpper:         {1, 1},
	StrLower:         {1, 1},
	StrTrim:          {1, 1},
	StrTrimStart:     {1, 1},
	StrTrimEnd:       {1, 1},
	StrSubstring:     {2, 3},
	StrIndexOf:       {2, 2},
	StrReplace:       {3, 3},
	StrConcat:        {2, -1},
	StrReverse:       {1, 1},
	StrLeft:          {2, 2},
	StrRight:         {2, 2},
	StrIsNullOrEmpty: {1, 1},
}

var dateArity = map[DateFunction]Arity{
	DateNow:        {0, 0},
	DateUtcNow:     {0, 0},
	DateToday:      {0, 0},
	DateYear:       {1, 1},
	DateMonth:      {1, 1},
	DateDay:        {1, 1},
	DateHour:       {1, 1},
	DateMinute:     {1, 1},
	DateSecond:     {1, 1},
	DateDayOfWeek:  {1, 1},
	DateDayOfYear:  {1, 1},
	DateDate:       {1, 1},
	DateAddYears:   {2, 2},
	DateAddMonths:  {2, 2},
	DateAddDays:    {2, 2},
	DateAddHours:   {2, 2},
	DateAddMinutes: {2, 2},
	DateAddSeconds: {2, 2},
	DateDiffDays:   {2, 2},
}

var numericArity = map[NumericFunction]Arity{
	NumAbs:      {1, 1},
	NumCeiling:  {1, 1},
	NumFloor:    {1, 1},
	NumRound:    {1, 2},
	NumTruncate: {1, 1},
	NumPower:    {2, 2},
	NumSqrt:     {1, 1},
	NumSign:     {1, 1},
	NumExp:      {1, 1},
	NumLog:      {1, 1},
	NumLog10:    {1, 1},
}

// Arity returns the operand bounds of the function; ok is false for an
// unknown function.
func (f StringFunction) Arity() (Arity, bool) {
	a, ok := stringArity[f]
	return a, ok
}

// Arity returns the operand bounds of the function; ok is false for an
// unknown function.
func (f DateFunction) Arity() (Arity, bool) {
	a, ok := dateArity[f]
	return a, ok
}

// Arity returns the operand bounds of the function; ok is false for an
// unknown function.
func (f NumericFunction) Arity() (Arity, bool) {
	a, ok := numericArity[f]
	return a, ok
}
