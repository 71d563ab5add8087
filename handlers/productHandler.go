package handlers

import (
	"net/http"

	"bitbucket.org/indofreight/freight_backend/models"
	"github.com/gin-gonic/gin"
)

func ListProducts(c *gin.Context) {
	products, err := models.GetProducts(c.Request.Context(),
		queryString(c, "name"), queryInt(c, "category_id"))
	if err != nil {
		respondError(c, "product", "ListProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	product, err := models.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, "product", "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func CreateProduct(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := models.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "product", "CreateProduct", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func UpdateProduct(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := models.UpdateProduct(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "product", "UpdateProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func DeleteProduct(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	product, err := models.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, "product", "DeleteProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func ListProductCategories(c *gin.Context) {
	categories, err := models.GetProductCategories(c.Request.Context(), queryString(c, "name"))
	if err != nil {
		respondError(c, "productCategory", "ListProductCategories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func CreateProductCategory(c *gin.Context) {
	var input models.NewProductCategory
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := models.CreateProductCategory(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "productCategory", "CreateProductCategory", err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func UpdateProductCategory(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewProductCategory
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := models.UpdateProductCategory(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "productCategory", "UpdateProductCategory", err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func DeleteProductCategory(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	category, err := models.DeleteProductCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, "productCategory", "DeleteProductCategory", err)
		return
	}
	c.JSON(http.StatusOK, category)
}

type toggleActiveInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func ToggleProductCategory(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input toggleActiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := models.ToggleActiveProductCategory(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "productCategory", "ToggleProductCategory", err)
		return
	}
	c.JSON(http.StatusOK, category)
}
