package handlers

import (
	"net/http"

	"bitbucket.org/indofreight/freight_backend/models"
	"github.com/gin-gonic/gin"
)

// Master-data resources share one thin CRUD shape; lookups are served from
// the Redis list cache inside the model layer.

func ListPorts(c *gin.Context) {
	ports, err := models.GetPorts(c.Request.Context(), queryString(c, "name"))
	if err != nil {
		respondError(c, "port", "ListPorts", err)
		return
	}
	c.JSON(http.StatusOK, ports)
}

func CreatePort(c *gin.Context) {
	var input models.NewPort
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	port, err := models.CreatePort(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "port", "CreatePort", err)
		return
	}
	c.JSON(http.StatusCreated, port)
}

func UpdatePort(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewPort
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	port, err := models.UpdatePort(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "port", "UpdatePort", err)
		return
	}
	c.JSON(http.StatusOK, port)
}

func DeletePort(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	port, err := models.DeletePort(c.Request.Context(), id)
	if err != nil {
		respondError(c, "port", "DeletePort", err)
		return
	}
	c.JSON(http.StatusOK, port)
}

func ListIncoterms(c *gin.Context) {
	incoterms, err := models.GetIncoterms(c.Request.Context())
	if err != nil {
		respondError(c, "incoterm", "ListIncoterms", err)
		return
	}
	c.JSON(http.StatusOK, incoterms)
}

func CreateIncoterm(c *gin.Context) {
	var input models.NewIncoterm
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	incoterm, err := models.CreateIncoterm(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "incoterm", "CreateIncoterm", err)
		return
	}
	c.JSON(http.StatusCreated, incoterm)
}

func UpdateIncoterm(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewIncoterm
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	incoterm, err := models.UpdateIncoterm(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "incoterm", "UpdateIncoterm", err)
		return
	}
	c.JSON(http.StatusOK, incoterm)
}

func DeleteIncoterm(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	incoterm, err := models.DeleteIncoterm(c.Request.Context(), id)
	if err != nil {
		respondError(c, "incoterm", "DeleteIncoterm", err)
		return
	}
	c.JSON(http.StatusOK, incoterm)
}

func ListCurrencies(c *gin.Context) {
	currencies, err := models.GetCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, "currency", "ListCurrencies", err)
		return
	}
	c.JSON(http.StatusOK, currencies)
}

func CreateCurrency(c *gin.Context) {
	var input models.NewCurrency
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	currency, err := models.CreateCurrency(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "currency", "CreateCurrency", err)
		return
	}
	c.JSON(http.StatusCreated, currency)
}

func UpdateCurrency(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewCurrency
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	currency, err := models.UpdateCurrency(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "currency", "UpdateCurrency", err)
		return
	}
	c.JSON(http.StatusOK, currency)
}

func DeleteCurrency(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	currency, err := models.DeleteCurrency(c.Request.Context(), id)
	if err != nil {
		respondError(c, "currency", "DeleteCurrency", err)
		return
	}
	c.JSON(http.StatusOK, currency)
}

func ListTemperaturePresets(c *gin.Context) {
	presets, err := models.GetTemperaturePresets(c.Request.Context())
	if err != nil {
		respondError(c, "temperaturePreset", "ListTemperaturePresets", err)
		return
	}
	c.JSON(http.StatusOK, presets)
}

func CreateTemperaturePreset(c *gin.Context) {
	var input models.NewTemperaturePreset
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	preset, err := models.CreateTemperaturePreset(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "temperaturePreset", "CreateTemperaturePreset", err)
		return
	}
	c.JSON(http.StatusCreated, preset)
}

func UpdateTemperaturePreset(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewTemperaturePreset
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	preset, err := models.UpdateTemperaturePreset(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "temperaturePreset", "UpdateTemperaturePreset", err)
		return
	}
	c.JSON(http.StatusOK, preset)
}

func DeleteTemperaturePreset(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	preset, err := models.DeleteTemperaturePreset(c.Request.Context(), id)
	if err != nil {
		respondError(c, "temperaturePreset", "DeleteTemperaturePreset", err)
		return
	}
	c.JSON(http.StatusOK, preset)
}

func ListContainerTypes(c *gin.Context) {
	types, err := models.GetContainerTypes(c.Request.Context())
	if err != nil {
		respondError(c, "containerType", "ListContainerTypes", err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func CreateContainerType(c *gin.Context) {
	var input models.NewContainerType
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	containerType, err := models.CreateContainerType(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "containerType", "CreateContainerType", err)
		return
	}
	c.JSON(http.StatusCreated, containerType)
}

func UpdateContainerType(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewContainerType
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	containerType, err := models.UpdateContainerType(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "containerType", "UpdateContainerType", err)
		return
	}
	c.JSON(http.StatusOK, containerType)
}

func DeleteContainerType(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	containerType, err := models.DeleteContainerType(c.Request.Context(), id)
	if err != nil {
		respondError(c, "containerType", "DeleteContainerType", err)
		return
	}
	c.JSON(http.StatusOK, containerType)
}
