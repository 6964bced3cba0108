// Package seed carga el catálogo de ejemplo a través de los casos de uso,
// de modo que precios y stock pasan por las mismas reglas que la API.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

const (
	iconCategoriaRefrigerados = "https://cdn-icons-png.flaticon.com/512/3082/3082011.png"
	iconCategoriaLacteos      = "https://cdn-icons-png.flaticon.com/512/3050/3050158.png"
	iconCategoriaVinos        = "https://cdn-icons-png.flaticon.com/512/2738/2738730.png"
	iconSubcategoria          = "https://cdn-icons-png.flaticon.com/512/3198/3198675.png"
	fotoBotella               = "https://cdn-icons-png.flaticon.com/512/2738/2738730.png"
)

// Summary cantidades creadas.
type Summary struct {
	Categories    int
	Subcategories int
	Products      int
}

type product struct {
	subcategoria string
	codigo       string
	descripcion  string
	conf         string
	info         string
	valor        string
	fisico       int
	comprometido int
}

// Categories categorías de ejemplo con sus subcategorías.
func Categories() []dto.CreateCategoryRequest {
	sub := func(nombre, descripcion, icon string) dto.InlineSubcategoryInput {
		return dto.InlineSubcategoryInput{Nombre: nombre, Descripcion: descripcion, Icon: icon, Foto: iconSubcategoria, Estado: "A"}
	}
	return []dto.CreateCategoryRequest{
		{
			Nombre: "Refrigerados", Descripcion: "Productos refrigerados de la tienda",
			Icon: "fridge", Foto: iconCategoriaRefrigerados, Estado: "A",
			Subcategorias: []dto.InlineSubcategoryInput{
				sub("Carnes frescas", "Carnes frescas refrigeradas", "meat"),
				sub("Pescados", "Pescados y mariscos frescos", "fish"),
				sub("Embutidos", "Embutidos y fiambres", "sausage"),
			},
		},
		{
			Nombre: "Lácteos y huevos", Descripcion: "Productos lácteos y huevos frescos",
			Icon: "egg", Foto: iconCategoriaLacteos, Estado: "A",
			Subcategorias: []dto.InlineSubcategoryInput{
				sub("Leche", "Diferentes tipos de leche", "milk"),
				sub("Quesos", "Quesos variados", "cheese"),
				sub("Yogurt", "Yogures y postres lácteos", "yogurt"),
			},
		},
		{
			Nombre: "Vinos y licores", Descripcion: "Selección de vinos y licores",
			Icon: "wine", Foto: iconCategoriaVinos, Estado: "A",
			Subcategorias: []dto.InlineSubcategoryInput{
				sub("Vinos tintos", "Selección de vinos tintos", "red-wine"),
				sub("Vinos blancos", "Selección de vinos blancos", "white-wine"),
				sub("Licores", "Licores y destilados", "liquor"),
			},
		},
	}
}

var products = []product{
	{"Vinos tintos", "VT001", "Vino tinto Reserva", "750ml", "Añejado en barrica de roble", "45", 50, 0},
	{"Vinos tintos", "VT002", "Vino tinto Crianza", "750ml", "Sabor intenso y afrutado", "35", 40, 5},
	{"Vinos blancos", "VB001", "Vino blanco Chardonnay", "750ml", "Sabor fresco y cítrico", "38", 35, 0},
	{"Vinos blancos", "VB002", "Vino blanco Sauvignon Blanc", "750ml", "Aroma a frutas tropicales", "32", 30, 3},
	{"Licores", "LC001", "Whisky 12 años", "700ml", "Whisky escocés premium", "120", 25, 2},
	{"Licores", "LC002", "Ron añejo", "750ml", "Ron dorado de 7 años", "85", 20, 0},
	{"Licores", "LC003", "Pisco puro", "700ml", "Pisco peruano de uva quebranta", "60", 40, 5},
}

// Products productos de ejemplo; subcategoriaId se resuelve por nombre con subIDs.
func Products(subIDs map[string]string) ([]dto.CreateProductRequest, error) {
	tasa := decimal.NewFromInt(18)
	out := make([]dto.CreateProductRequest, 0, len(products))
	for _, p := range products {
		subID, ok := subIDs[p.subcategoria]
		if !ok {
			return nil, fmt.Errorf("seed: subcategoría %q no creada", p.subcategoria)
		}
		valor := decimal.RequireFromString(p.valor)
		fisico, comprometido := p.fisico, p.comprometido
		out = append(out, dto.CreateProductRequest{
			Codigo:            p.codigo,
			Descripcion:       p.descripcion,
			UnidadVenta:       "BOT",
			ConfUnidadVenta:   p.conf,
			InfoAdicional:     p.info,
			Foto:              fotoBotella,
			Moneda:            "PEN",
			ValorVenta:        &valor,
			TasaImpuesto:      &tasa,
			SubcategoriaID:    subID,
			Estado:            "A",
			StockFisico:       &fisico,
			StockComprometido: &comprometido,
		})
	}
	return out, nil
}

// Run crea categorías, subcategorías y productos. No borra nada: sobre un catálogo con los
// mismos códigos falla con domain.ErrDuplicate.
func Run(ctx context.Context, categories *usecase.CategoryUseCase, productUC *usecase.ProductUseCase, log *logger.Logger) (Summary, error) {
	var sum Summary
	subIDs := make(map[string]string)
	for _, in := range Categories() {
		cat, err := categories.Create(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("seed: categoría %s: %w", in.Nombre, err)
		}
		sum.Categories++
		for _, s := range cat.Subcategorias {
			subIDs[s.Nombre] = s.ID
			sum.Subcategories++
		}
		log.Debug().Str("categoria", cat.Nombre).Int("subcategorias", len(cat.Subcategorias)).Msg("categoría creada")
	}

	reqs, err := Products(subIDs)
	if err != nil {
		return sum, err
	}
	for _, in := range reqs {
		p, err := productUC.Create(ctx, in, nil)
		if err != nil {
			return sum, fmt.Errorf("seed: producto %s: %w", in.Codigo, err)
		}
		sum.Products++
		log.Debug().Str("codigo", p.Codigo).Str("precio_venta", p.PrecioVenta.StringFixed(2)).Msg("producto creado")
	}
	return sum, nil
}
