package calculator

import (
	"strconv"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/zephyrtronium/calculator/arith"
)

// Unit is an atomic symbol of calculator input: a digit, the decimal point, a
// bracket, an operator, a function, a variable, or a constant. The set of
// units is closed; the zero value is not a valid unit.
type Unit uint8

const (
	unitNone Unit = iota

	Zero
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Point
	LeftBracket
	RightBracket

	Plus
	Minus
	Times
	Divide
	Power
	Sci // scientific notation shorthand, xᴇn = x×10ⁿ
	Root
	NPr
	NCr

	Abs
	Arg
	Conj
	Sqrt
	Ln
	Log
	Log2
	Sin
	Cos
	Tan
	Csc
	Sec
	Cot
	Asin
	Acos
	Atan
	Sinh
	Cosh
	Tanh
	Asinh
	Acosh
	Atanh

	Factorial
	Percent
	Squared
	Cubed
	Inverse

	Ans
	X
	Y
	Z
	A
	B
	C
	D
	Alpha
	Beta
	Gamma

	I

	Pi
	Tau
	E
	GoldenRatio
	Feigenbaum
	Gravitation
	SpeedOfLight
	Planck
	PlanckReduced
	ElementaryCharge
	VacuumPermeability
	VacuumPermittivity
	Boltzmann
	StefanBoltzmann
	GasConstant
	Avogadro
	ElectronMass
	ProtonMass
	NeutronMass
	BohrRadius
	Rydberg
	FineStructure
	AstronomicalUnit
	LightYear
	Parsec
	SolarMass
	SolarRadius
	SolarLuminosity
	SunTemperature
	EarthMass
	EarthRadius
	ProtonMassMeV
	NeutronMassMeV
	ElectronMassMeV
	MuonMass
	TauMass
	UpMass
	DownMass
	CharmMass
	StrangeMass
	TopMass
	BottomMass
	WMass
	ZMass

	unitEnd
)

type class uint8

const (
	classNone class = iota
	classDigit
	classPoint
	classBracket
	classOperator
	classPre
	classPost
	classVariable
	classConstant
)

// unitInfo describes a unit. disp is the canonical display string. name is
// an ASCII spelling for text input. value is the decimal text of a
// constant's value; constants with an empty value are computed.
type unitInfo struct {
	disp  string
	name  string
	class class
	value string
}

var units = [unitEnd]unitInfo{
	Zero:         {"0", "0", classDigit, ""},
	One:          {"1", "1", classDigit, ""},
	Two:          {"2", "2", classDigit, ""},
	Three:        {"3", "3", classDigit, ""},
	Four:         {"4", "4", classDigit, ""},
	Five:         {"5", "5", classDigit, ""},
	Six:          {"6", "6", classDigit, ""},
	Seven:        {"7", "7", classDigit, ""},
	Eight:        {"8", "8", classDigit, ""},
	Nine:         {"9", "9", classDigit, ""},
	Point:        {".", ".", classPoint, ""},
	LeftBracket:  {"(", "(", classBracket, ""},
	RightBracket: {")", ")", classBracket, ""},

	Plus:   {"+", "+", classOperator, ""},
	Minus:  {"−", "-", classOperator, ""},
	Times:  {"×", "*", classOperator, ""},
	Divide: {"÷", "/", classOperator, ""},
	Power:  {"^", "^", classOperator, ""},
	Sci:    {"ᴇ", "E", classOperator, ""},
	Root:   {"ⁿ√", "root", classOperator, ""},
	NPr:    {"𝐏", "nPr", classOperator, ""},
	NCr:    {"𝐂", "nCr", classOperator, ""},

	Abs:   {"abs", "abs", classPre, ""},
	Arg:   {"arg", "arg", classPre, ""},
	Conj:  {"conj", "conj", classPre, ""},
	Sqrt:  {"√", "sqrt", classPre, ""},
	Ln:    {"ln", "ln", classPre, ""},
	Log:   {"log", "log", classPre, ""},
	Log2:  {"log₂", "log2", classPre, ""},
	Sin:   {"sin", "sin", classPre, ""},
	Cos:   {"cos", "cos", classPre, ""},
	Tan:   {"tan", "tan", classPre, ""},
	Csc:   {"csc", "csc", classPre, ""},
	Sec:   {"sec", "sec", classPre, ""},
	Cot:   {"cot", "cot", classPre, ""},
	Asin:  {"sin⁻¹", "asin", classPre, ""},
	Acos:  {"cos⁻¹", "acos", classPre, ""},
	Atan:  {"tan⁻¹", "atan", classPre, ""},
	Sinh:  {"sinh", "sinh", classPre, ""},
	Cosh:  {"cosh", "cosh", classPre, ""},
	Tanh:  {"tanh", "tanh", classPre, ""},
	Asinh: {"sinh⁻¹", "asinh", classPre, ""},
	Acosh: {"cosh⁻¹", "acosh", classPre, ""},
	Atanh: {"tanh⁻¹", "atanh", classPre, ""},

	Factorial: {"!", "!", classPost, ""},
	Percent:   {"%", "%", classPost, ""},
	Squared:   {"²", "squared", classPost, ""},
	Cubed:     {"³", "cubed", classPost, ""},
	Inverse:   {"⁻¹", "inv", classPost, ""},

	Ans:   {"Ans", "Ans", classVariable, ""},
	X:     {"X", "X", classVariable, ""},
	Y:     {"Y", "Y", classVariable, ""},
	Z:     {"Z", "Z", classVariable, ""},
	A:     {"A", "A", classVariable, ""},
	B:     {"B", "B", classVariable, ""},
	C:     {"C", "C", classVariable, ""},
	D:     {"D", "D", classVariable, ""},
	Alpha: {"α", "alpha", classVariable, ""},
	Beta:  {"β", "beta", classVariable, ""},
	Gamma: {"γ", "gamma", classVariable, ""},

	I: {"i", "i", classConstant, ""},

	Pi:                 {"π", "pi", classConstant, ""},
	Tau:                {"τ", "tau", classConstant, ""},
	E:                  {"e", "e", classConstant, ""},
	GoldenRatio:        {"ϕ", "phi", classConstant, "1.618033988749894848204586834"},
	Feigenbaum:         {"δ", "feigenbaum", classConstant, "4.669201609102990671853"},
	Gravitation:        {"𝐺", "G", classConstant, "6.67408e-11"},
	SpeedOfLight:       {"𝑐", "c", classConstant, "299792458"},
	Planck:             {"ℎ", "h", classConstant, "6.62607015e-34"},
	PlanckReduced:      {"ℏ", "hbar", classConstant, ""},
	ElementaryCharge:   {"𝑒", "qe", classConstant, "1.602176634e-19"},
	VacuumPermeability: {"𝜇₀", "mu0", classConstant, "1.2566370614e-6"},
	VacuumPermittivity: {"𝜀₀", "eps0", classConstant, "8.854187817e-12"},
	Boltzmann:          {"𝑘ʙ", "kB", classConstant, "1.380649e-23"},
	StefanBoltzmann:    {"𝜎", "sigma", classConstant, "5.670367e-8"},
	GasConstant:        {"𝑅", "R", classConstant, "8.3144598"},
	Avogadro:           {"𝑁ᴀ", "NA", classConstant, "6.02214076e23"},
	ElectronMass:       {"𝑚ₑ", "me", classConstant, "9.10938356e-31"},
	ProtonMass:         {"𝑚ₚ", "mp", classConstant, "1.672621898e-27"},
	NeutronMass:        {"𝑚ₙ", "mn", classConstant, "1.674927471e-27"},
	BohrRadius:         {"𝑎₀", "a0", classConstant, "5.2917721067e-11"},
	Rydberg:            {"𝑅∞", "Rinf", classConstant, "10973731.568508"},
	FineStructure:      {"𝛼", "fsc", classConstant, "0.0072973525664"},
	AstronomicalUnit:   {"au", "au", classConstant, "149597870700"},
	LightYear:          {"ly", "ly", classConstant, "9460730472580800"},
	Parsec:             {"pc", "pc", classConstant, "30856775814913673"},
	SolarMass:          {"𝑀☉", "Msun", classConstant, "1.98847e30"},
	SolarRadius:        {"𝑅☉", "Rsun", classConstant, "6.95700e8"},
	SolarLuminosity:    {"𝐿☉", "Lsun", classConstant, "3.828e26"},
	SunTemperature:     {"𝑇☉", "Tsun", classConstant, "5772"},
	EarthMass:          {"𝑀⊕", "Mearth", classConstant, "5.9722e24"},
	EarthRadius:        {"𝑅⊕", "Rearth", classConstant, "6.3781e6"},
	ProtonMassMeV:      {"𝑚ₚ±", "mpMeV", classConstant, "938.2720813"},
	NeutronMassMeV:     {"𝑚ₙ⁰", "mnMeV", classConstant, "939.5654133"},
	ElectronMassMeV:    {"𝑚ₑ±", "meMeV", classConstant, "0.5109989461"},
	MuonMass:           {"𝑚μ±", "mmu", classConstant, "105.6583745"},
	TauMass:            {"𝑚τ±", "mtau", classConstant, "1776.82"},
	UpMass:             {"𝑚ᵤ", "mup", classConstant, "2.01"},
	DownMass:           {"𝑚d", "mdown", classConstant, "4.79"},
	CharmMass:          {"𝑚c", "mcharm", classConstant, "1280"},
	StrangeMass:        {"𝑚ₛ", "mstrange", classConstant, "93.8"},
	TopMass:            {"𝑚ₜ", "mtop", classConstant, "172440"},
	BottomMass:         {"𝑚b", "mbottom", classConstant, "4180"},
	WMass:              {"𝑚W±", "mW", classConstant, "80385"},
	ZMass:              {"𝑚Z⁰", "mZ", classConstant, "91187.6"},
}

// String returns the canonical display string of u.
func (u Unit) String() string {
	if !u.Valid() {
		return "Unit(" + strconv.Itoa(int(u)) + ")"
	}
	return units[u].disp
}

// Name returns an ASCII spelling of u suitable for typing.
func (u Unit) Name() string {
	if !u.Valid() {
		return ""
	}
	return units[u].name
}

// Valid returns whether u is in the vocabulary.
func (u Unit) Valid() bool {
	return unitNone < u && u < unitEnd
}

func (u Unit) class() class {
	if !u.Valid() {
		return classNone
	}
	return units[u].class
}

func (u Unit) IsDigit() bool {
	return u.class() == classDigit
}

func (u Unit) IsDigitOrPoint() bool {
	return u.IsDigit() || u == Point
}

func (u Unit) IsPlusOrMinus() bool {
	return u == Plus || u == Minus
}

func (u Unit) IsDigitOrPlusOrMinus() bool {
	return u.IsDigit() || u.IsPlusOrMinus()
}

func (u Unit) IsTimesOrDivide() bool {
	return u == Times || u == Divide
}

func (u Unit) IsPermutationOrCombination() bool {
	return u == NPr || u == NCr
}

// IsOperator reports whether u is a binary operator, including ᴇ.
func (u Unit) IsOperator() bool {
	return u.class() == classOperator
}

// IsPreFunction reports whether u is a function written before its argument.
func (u Unit) IsPreFunction() bool {
	return u.class() == classPre
}

// IsPostFunction reports whether u is a function written after its argument.
func (u Unit) IsPostFunction() bool {
	return u.class() == classPost
}

// IsVariable reports whether u is a variable, including Ans.
func (u Unit) IsVariable() bool {
	return u.class() == classVariable
}

// IsConstant reports whether u has a fixed value: i or a named constant.
func (u Unit) IsConstant() bool {
	return u.class() == classConstant
}

var constValues struct {
	once sync.Once
	v    [unitEnd]arith.Complex
}

// Value returns the value of a constant. The second result is false if u is
// not a constant.
func (u Unit) Value() (arith.Complex, bool) {
	if !u.IsConstant() {
		return arith.Complex{}, false
	}
	constValues.once.Do(initConstValues)
	return constValues.v[u], true
}

func initConstValues() {
	v := &constValues.v
	for u := range unitEnd {
		info := &units[u]
		if info.class != classConstant || info.value == "" {
			continue
		}
		x, err := arith.ParseReal(info.value)
		if err == nil {
			x, err = arith.Finish(x, nil)
		}
		if err != nil {
			panic("calculator: invalid value for constant " + info.disp + ": " + err.Error())
		}
		v[u] = x
	}
	v[I] = arith.I
	v[Pi] = arith.Pi()
	v[E] = arith.E()
	tau, err := arith.Mul(arith.FromInt64(2), arith.Real(arith.PiDigits(arith.Precision+8)))
	if err != nil {
		panic("calculator: computing τ: " + err.Error())
	}
	v[Tau] = tau
	hbar, err := arith.Quo(v[Planck], tau)
	if err != nil {
		panic("calculator: computing ℏ: " + err.Error())
	}
	v[PlanckReduced] = hbar
}

var registry struct {
	once   sync.Once
	byDisp map[string]Unit
}

// Lookup returns the unit whose display string is s. Strings are compared
// after NFC normalization.
func Lookup(s string) (Unit, bool) {
	registry.once.Do(func() {
		m := make(map[string]Unit, len(units))
		for u := Unit(1); u < unitEnd; u++ {
			k := norm.NFC.String(units[u].disp)
			if v, ok := m[k]; ok {
				panic("calculator: duplicate display " + strconv.Quote(k) + " for " + units[v].name + " and " + units[u].name)
			}
			m[k] = u
		}
		registry.byDisp = m
	})
	u, ok := registry.byDisp[norm.NFC.String(s)]
	return u, ok
}

// Vocabulary returns every unit, in declaration order.
func Vocabulary() []Unit {
	r := make([]Unit, 0, unitEnd-1)
	for u := Unit(1); u < unitEnd; u++ {
		r = append(r, u)
	}
	return r
}

// Variables returns the user variables in canonical order. Ans is not
// included; it is bound by calculations rather than by the user.
func Variables() []Unit {
	return []Unit{X, Y, Z, A, B, C, D, Alpha, Beta, Gamma}
}

// Constants returns the named constants in canonical order. The imaginary
// unit is not included.
func Constants() []Unit {
	r := make([]Unit, 0, unitEnd-Pi)
	for u := Pi; u < unitEnd; u++ {
		r = append(r, u)
	}
	return r
}

// PreFunctions returns the functions written before their arguments.
func PreFunctions() []Unit {
	return []Unit{
		Abs, Arg, Conj, Sqrt, Ln, Log, Log2, Sin, Cos, Tan,
		Asin, Acos, Atan, Sinh, Cosh, Tanh, Asinh, Acosh, Atanh, Csc, Sec, Cot,
	}
}

// PostFunctions returns the functions written after their arguments.
func PostFunctions() []Unit {
	return []Unit{Factorial, Percent, Squared, Cubed, Inverse}
}
