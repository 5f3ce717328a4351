// Package analysis contiene los análisis batch sobre un entity.Dataset: merma (leakage),
// varianza contra recetas, tendencia de precios, ingeniería de menú y patrones de consumo.
// Todas las funciones son puras; no hay estado compartido entre ejecuciones.
package analysis

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Reduction forma de reducir los valores de una medida dentro de un grupo.
type Reduction int

const (
	Sum Reduction = iota
	Mean
	First
	Min
	Max
	StdDev // desviación estándar muestral (n-1); 0 con menos de 2 valores
	Count
)

// Measure medida numérica extraída de cada registro.
type Measure[R any] struct {
	Name   string
	Value  func(R) decimal.Decimal
	Reduce Reduction
}

// Label atributo de texto del grupo; se conserva el primero visto.
type Label[R any] struct {
	Name  string
	Value func(R) string
}

// Group resultado de agregar todos los registros con la misma clave.
type Group struct {
	Key    string
	Rows   int
	values map[string]decimal.Decimal
	labels map[string]string
}

// Value devuelve la medida reducida; una medida ausente vale 0.
func (g *Group) Value(name string) decimal.Decimal {
	if g == nil {
		return decimal.Zero
	}
	return g.values[name]
}

// Label devuelve la etiqueta del grupo ("" si no existe).
func (g *Group) Label(name string) string {
	if g == nil {
		return ""
	}
	return g.labels[name]
}

// Groups conjunto de grupos en orden de primera aparición de la clave.
type Groups struct {
	order []string
	byKey map[string]*Group
}

// Keys claves en orden de primera aparición.
func (gs *Groups) Keys() []string { return gs.order }

// Len número de claves distintas.
func (gs *Groups) Len() int { return len(gs.order) }

// Has indica si la clave apareció en la entrada.
func (gs *Groups) Has(key string) bool {
	_, ok := gs.byKey[key]
	return ok
}

// Get devuelve el grupo de la clave o nil; sobre nil, Value devuelve 0.
func (gs *Groups) Get(key string) *Group { return gs.byKey[key] }

// GroupBy agrupa rows por key y reduce cada medida. Todas las claves vistas se conservan.
func GroupBy[R any](rows []R, key func(R) string, measures []Measure[R], labels ...Label[R]) *Groups {
	gs := &Groups{byKey: make(map[string]*Group)}
	raw := make(map[string]map[string][]decimal.Decimal)

	for _, r := range rows {
		k := key(r)
		g, ok := gs.byKey[k]
		if !ok {
			g = &Group{Key: k, values: make(map[string]decimal.Decimal), labels: make(map[string]string)}
			gs.byKey[k] = g
			gs.order = append(gs.order, k)
			raw[k] = make(map[string][]decimal.Decimal, len(measures))
		}
		g.Rows++
		for _, m := range measures {
			raw[k][m.Name] = append(raw[k][m.Name], m.Value(r))
		}
		for _, l := range labels {
			if _, seen := g.labels[l.Name]; !seen {
				g.labels[l.Name] = l.Value(r)
			}
		}
	}

	for k, g := range gs.byKey {
		for _, m := range measures {
			g.values[m.Name] = Reduce(raw[k][m.Name], m.Reduce)
		}
	}
	return gs
}

// Reduce aplica la reducción a una serie de valores. Una serie vacía reduce a 0.
func Reduce(vals []decimal.Decimal, how Reduction) decimal.Decimal {
	if len(vals) == 0 {
		return decimal.Zero
	}
	switch how {
	case Sum:
		return decimal.Sum(vals[0], vals[1:]...)
	case Mean:
		return decimal.Avg(vals[0], vals[1:]...)
	case First:
		return vals[0]
	case Min:
		return decimal.Min(vals[0], vals[1:]...)
	case Max:
		return decimal.Max(vals[0], vals[1:]...)
	case StdDev:
		return sampleStdDev(vals)
	case Count:
		return decimal.NewFromInt(int64(len(vals)))
	}
	return decimal.Zero
}

func sampleStdDev(vals []decimal.Decimal) decimal.Decimal {
	n := len(vals)
	if n < 2 {
		return decimal.Zero
	}
	mean := decimal.Avg(vals[0], vals[1:]...)
	ss := decimal.Zero
	for _, v := range vals {
		d := v.Sub(mean)
		ss = ss.Add(d.Mul(d))
	}
	variance := ss.Div(decimal.NewFromInt(int64(n - 1)))
	return decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
}

// UnionKeys claves de ambos conjuntos (outer join) en orden alfabético.
func UnionKeys(a, b *Groups) []string {
	seen := make(map[string]struct{}, a.Len()+b.Len())
	keys := make([]string, 0, a.Len()+b.Len())
	for _, gs := range []*Groups{a, b} {
		for _, k := range gs.order {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

var hundred = decimal.NewFromInt(100)

// Ratio num/den; 0 cuando den es 0.
func Ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// Percent num/den*100; 0 cuando den es 0.
func Percent(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Mul(hundred).Div(den)
}
