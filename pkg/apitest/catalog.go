// Package apitest holds the endpoint test catalog and the runner that
// executes catalog entries against the remote service.
package apitest

import "github.com/cambiomz/metical-converter/pkg/domain"

// Parameter describes one input of a callable endpoint.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // string, number or boolean
	Required    bool   `json:"required"`
	Description string `json:"description"`
	Example     any    `json:"example,omitempty"`
}

// TestCase is a canned parameter set for an endpoint.
type TestCase struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Endpoint is one callable entry of the catalog. Paths may contain
// {param} placeholders resolved at call time.
type Endpoint struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Method      string      `json:"method"`
	Path        string      `json:"path"`
	Description string      `json:"description"`
	Deprecated  bool        `json:"deprecated,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	TestCases   []TestCase  `json:"testCases"`
}

// TestCase looks up a canned test case by name.
func (e Endpoint) TestCase(name string) (TestCase, bool) {
	for _, tc := range e.TestCases {
		if tc.Name == name {
			return tc, true
		}
	}
	return TestCase{}, false
}

// Catalog is the static registry of callable endpoints. It is populated
// at process start and immutable afterwards.
type Catalog struct {
	endpoints []Endpoint
	byID      map[string]int
}

// NewCatalog builds a catalog from the given entries.
func NewCatalog(endpoints []Endpoint) *Catalog {
	byID := make(map[string]int, len(endpoints))
	for i, e := range endpoints {
		byID[e.ID] = i
	}
	return &Catalog{endpoints: endpoints, byID: byID}
}

// Endpoints returns the catalog entries in declaration order.
func (c *Catalog) Endpoints() []Endpoint {
	out := make([]Endpoint, len(c.endpoints))
	copy(out, c.endpoints)
	return out
}

// Get looks up an endpoint by id.
func (c *Catalog) Get(id string) (Endpoint, error) {
	i, ok := c.byID[id]
	if !ok {
		return Endpoint{}, domain.ErrUnknownEndpoint
	}
	return c.endpoints[i], nil
}

// DefaultCatalog returns the seven canonical metical-converter endpoints
// with their canned test fixtures. The last three are retained for the
// harness only; the conversion path never uses them.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Endpoint{
		{
			ID:          "get-currencies",
			Name:        "Listar Moedas Disponíveis",
			Method:      "GET",
			Path:        "/api/v1/currencies",
			Description: "Obter lista de todas as moedas suportadas pela API",
			TestCases: []TestCase{
				{
					Name:        "Listar todas as moedas",
					Description: "Buscar lista completa de moedas disponíveis",
					Parameters:  map[string]any{},
				},
			},
		},
		{
			ID:          "exchange-quote",
			Name:        "Cotação de Câmbio",
			Method:      "GET",
			Path:        "/api/v1/exchange/quote",
			Description: "Calcular conversão entre moedas usando parâmetros from/to",
			Parameters: []Parameter{
				{Name: "from", Type: "string", Required: true, Description: "Moeda de origem (ex: USD, EUR, MZN)", Example: "USD"},
				{Name: "to", Type: "string", Required: true, Description: "Moeda de destino (ex: USD, EUR, MZN)", Example: "MZN"},
				{Name: "amount", Type: "number", Required: true, Description: "Valor a ser convertido (mínimo 0.01)", Example: 100},
			},
			TestCases: []TestCase{
				{
					Name:        "USD para MZN",
					Description: "Converter 100 USD para Metical Moçambicano",
					Parameters:  map[string]any{"from": "USD", "to": "MZN", "amount": 100},
				},
				{
					Name:        "EUR para MZN",
					Description: "Converter 50 EUR para Metical Moçambicano",
					Parameters:  map[string]any{"from": "EUR", "to": "MZN", "amount": 50},
				},
				{
					Name:        "MZN para USD",
					Description: "Converter 1000 MZN para Dólares Americanos",
					Parameters:  map[string]any{"from": "MZN", "to": "USD", "amount": 1000},
				},
				{
					Name:        "GBP para ZAR",
					Description: "Converter 25 GBP para Rand Sul-Africano",
					Parameters:  map[string]any{"from": "GBP", "to": "ZAR", "amount": 25},
				},
				{
					Name:        "Valor grande",
					Description: "Converter 10000 USD para MZN",
					Parameters:  map[string]any{"from": "USD", "to": "MZN", "amount": 10000},
				},
				{
					Name:        "Valor pequeno",
					Description: "Converter 1 EUR para MZN",
					Parameters:  map[string]any{"from": "EUR", "to": "MZN", "amount": 1},
				},
			},
		},
		{
			ID:          "exchange-rates",
			Name:        "Listar Taxas de Câmbio",
			Method:      "GET",
			Path:        "/api/v1/exchange-rates",
			Description: "Obter todas as taxas de câmbio disponíveis",
			TestCases: []TestCase{
				{
					Name:        "Todas as taxas",
					Description: "Buscar todas as taxas de câmbio disponíveis",
					Parameters:  map[string]any{},
				},
			},
		},
		{
			ID:          "exchange-rates-by-currency",
			Name:        "Taxa de Câmbio por Moeda",
			Method:      "GET",
			Path:        "/api/v1/exchange-rates/{currency}",
			Description: "Buscar taxa de câmbio específica por moeda",
			Parameters: []Parameter{
				{Name: "currency", Type: "string", Required: true, Description: "Código da moeda (ex: USD, EUR, GBP)", Example: "USD"},
			},
			TestCases: []TestCase{
				{
					Name:        "Taxa USD",
					Description: "Buscar taxa de câmbio do Dólar Americano",
					Parameters:  map[string]any{"currency": "USD"},
				},
				{
					Name:        "Taxa EUR",
					Description: "Buscar taxa de câmbio do Euro",
					Parameters:  map[string]any{"currency": "EUR"},
				},
				{
					Name:        "Taxa GBP",
					Description: "Buscar taxa de câmbio da Libra Esterlina",
					Parameters:  map[string]any{"currency": "GBP"},
				},
				{
					Name:        "Taxa ZAR",
					Description: "Buscar taxa de câmbio do Rand Sul-Africano",
					Parameters:  map[string]any{"currency": "ZAR"},
				},
			},
		},
		{
			ID:          "sell-metical",
			Name:        "Vender Metical (DEPRECATED)",
			Method:      "GET",
			Path:        "/api/v1/sell-metical",
			Description: "DEPRECATED: Use /quote com from=MZN&to=CURRENCY",
			Deprecated:  true,
			Parameters: []Parameter{
				{Name: "amount", Type: "number", Required: true, Description: "Valor em Metical a ser vendido (mínimo 0.01)", Example: 1000},
				{Name: "currency", Type: "string", Required: true, Description: "Moeda de destino", Example: "USD"},
			},
			TestCases: []TestCase{
				{
					Name:        "Vender MZN por USD",
					Description: "Vender 1000 MZN por Dólares",
					Parameters:  map[string]any{"amount": 1000, "currency": "USD"},
				},
				{
					Name:        "Vender MZN por EUR",
					Description: "Vender 500 MZN por Euros",
					Parameters:  map[string]any{"amount": 500, "currency": "EUR"},
				},
			},
		},
		{
			ID:          "sell-foreign-currency",
			Name:        "Vender Moeda Estrangeira (DEPRECATED)",
			Method:      "GET",
			Path:        "/api/v1/sell-foreign-currency",
			Description: "DEPRECATED: Use /quote com from=CURRENCY&to=MZN",
			Deprecated:  true,
			Parameters: []Parameter{
				{Name: "amount", Type: "number", Required: true, Description: "Valor da moeda estrangeira a ser vendida (mínimo 0.01)", Example: 100},
				{Name: "currency", Type: "string", Required: true, Description: "Código da moeda estrangeira", Example: "USD"},
			},
			TestCases: []TestCase{
				{
					Name:        "Vender USD por MZN",
					Description: "Vender 100 USD por Metical",
					Parameters:  map[string]any{"amount": 100, "currency": "USD"},
				},
				{
					Name:        "Vender EUR por MZN",
					Description: "Vender 50 EUR por Metical",
					Parameters:  map[string]any{"amount": 50, "currency": "EUR"},
				},
			},
		},
		{
			ID:          "buy-foreign-currency",
			Name:        "Comprar Moeda Estrangeira (DEPRECATED)",
			Method:      "GET",
			Path:        "/api/v1/buy-foreign-currency",
			Description: "DEPRECATED: Use /quote com from=MZN&to=CURRENCY",
			Deprecated:  true,
			Parameters: []Parameter{
				{Name: "amount", Type: "number", Required: true, Description: "Valor em Metical para comprar moeda estrangeira (mínimo 0.01)", Example: 1000},
				{Name: "currency", Type: "string", Required: true, Description: "Código da moeda estrangeira a comprar", Example: "USD"},
			},
			TestCases: []TestCase{
				{
					Name:        "Comprar USD com MZN",
					Description: "Comprar USD com 1000 MZN",
					Parameters:  map[string]any{"amount": 1000, "currency": "USD"},
				},
				{
					Name:        "Comprar EUR com MZN",
					Description: "Comprar EUR com 500 MZN",
					Parameters:  map[string]any{"amount": 500, "currency": "EUR"},
				},
			},
		},
	})
}
