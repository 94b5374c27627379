package token

// FuncClass selects how a function's sub-equations are placed.
type FuncClass uint8

const (
	// ClassPlain functions take only an argument: \name({arg}).
	ClassPlain FuncClass = iota
	// ClassLimits functions take subscript and superscript: \name_{sub}^{sup} {arg}.
	ClassLimits
	// ClassSubscript functions take a subscript: \name_{sub} {arg}.
	ClassSubscript
	// ClassLimit functions take a subscript and parenthesize the argument: \name_{sub}({arg}).
	ClassLimit
)

// FuncInfo describes one vocabulary function.
type FuncInfo struct {
	Name  string
	Class FuncClass
	// Slots lists the roles expected before the argument, in scan order.
	Slots []Role
}

// Arity is the number of sub-equations the function expects, argument included.
func (f FuncInfo) Arity() int {
	return len(f.Slots) + 1
}

// HasSlot reports whether role is placed by this function's rendering convention.
func (f FuncInfo) HasSlot(role Role) bool {
	if role == RoleArgument {
		return true
	}
	for _, s := range f.Slots {
		if s == role {
			return true
		}
	}
	return false
}

// Roles assigns roles to n untyped entries counted from the end: the last
// entry is the argument, the ones before it take Slots right to left, and any
// surplus leading entries are treated as arguments.
func (f FuncInfo) Roles(n int) []Role {
	if n <= 0 {
		return nil
	}
	roles := make([]Role, n)
	j := len(f.Slots) - 1
	for i := n - 2; i >= 0 && j >= 0; i-- {
		roles[i] = f.Slots[j]
		j--
	}
	return roles
}

var (
	limitsSlots    = []Role{RoleSubscript, RoleSuperscript}
	subscriptSlots = []Role{RoleSubscript}
)

var functions = map[string]FuncInfo{}

func register(class FuncClass, slots []Role, names ...string) {
	for _, n := range names {
		functions[n] = FuncInfo{Name: n, Class: class, Slots: slots}
	}
}

func init() {
	register(ClassLimits, limitsSlots, "sum", "int")
	register(ClassSubscript, subscriptSlots, "log")
	register(ClassLimit, subscriptSlots, "lim", "liminf", "limsup")
	register(ClassPlain, nil,
		"sin", "cos", "ln", "sqrt", "abs",
		"arcsin", "arctan", "arccos", "arg",
		"cosh", "cot", "coth", "csc", "deg", "det", "dim", "exp",
		"gcd", "hom", "inf", "ker", "lg", "max", "min", "Pr",
		"sec", "sinh", "tan", "tanh", "sup",
	)
}

// LookupFunction возвращает описание функции, если имя входит в словарь.
// Имена регистрозависимые: "Pr", но не "pr".
func LookupFunction(name string) (FuncInfo, bool) {
	f, ok := functions[name]
	return f, ok
}

// FunctionNames returns the vocabulary in no particular order.
func FunctionNames() []string {
	names := make([]string, 0, len(functions))
	for n := range functions {
		names = append(names, n)
	}
	return names
}
