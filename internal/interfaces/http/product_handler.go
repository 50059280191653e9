package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/catalog"
	"github.com/jhoicas/pizzeria-api/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP del menú.
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto del menú
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateProduct(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(out))
}

// List godoc
// @Summary      Listar el menú
// @Tags         products
// @Produce      json
// @Param        all  query  bool  false  "Incluir productos no disponibles"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	onlyAvailable := !c.QueryBool("all", false)
	views, err := h.uc.ListMenu(c.Context(), onlyAvailable)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toProductResponse(v))
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar en el menú
// @Description  Búsqueda con tolerancia a errores de tipeo, ordenada por
// @Description  relevancia. Si no hay resultados devuelve sugerencias de
// @Description  nombres parecidos.
// @Tags         products
// @Produce      json
// @Param        q      query  string  true   "Texto a buscar"
// @Param        limit  query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.MenuSearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", 20)

	results, err := h.uc.SearchMenu(c.Context(), query, limit)
	if err != nil {
		return fail(c, err)
	}

	out := dto.MenuSearchResponse{
		Query:   query,
		Results: make([]dto.MenuSearchResult, 0, len(results)),
	}
	for _, r := range results {
		out.Results = append(out.Results, dto.MenuSearchResult{
			ProductResponse: toProductResponse(r.View),
			Score:           r.Score,
		})
	}
	if len(out.Results) == 0 {
		suggestions, err := h.uc.Suggest(c.Context(), query, 10)
		if err != nil {
			return fail(c, err)
		}
		out.Suggestions = suggestions
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener producto por slug o ID
// @Tags         products
// @Produce      json
// @Param        slug  path  string  true  "Slug o ID del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{slug} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.Context(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProductResponse(out))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        slug  path  string  true  "Slug o ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{slug} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateProduct(c.Context(), c.Params("slug"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProductResponse(out))
}
