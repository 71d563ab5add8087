package handlers

import (
	"net/http"

	"bitbucket.org/indofreight/freight_backend/models"
	"github.com/gin-gonic/gin"
)

func ListCustomers(c *gin.Context) {
	customers, err := models.GetCustomers(c.Request.Context(), queryString(c, "name"))
	if err != nil {
		respondError(c, "customer", "ListCustomers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func GetCustomer(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	customer, err := models.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, "customer", "GetCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func CreateCustomer(c *gin.Context) {
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := models.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "customer", "CreateCustomer", err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func UpdateCustomer(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := models.UpdateCustomer(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "customer", "UpdateCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func ToggleCustomer(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input toggleActiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := models.ToggleActiveCustomer(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "customer", "ToggleCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func DeleteCustomer(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	customer, err := models.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, "customer", "DeleteCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
