package handlers

import (
	"net/http"

	"bitbucket.org/indofreight/freight_backend/models"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/gin-gonic/gin"
)

func ListShipments(c *gin.Context) {
	filter := models.ShipmentFilter{
		CustomerId: queryInt(c, "customer_id"),
		Search:     queryString(c, "search"),
	}
	if v := c.Query("status"); v != "" {
		status := models.ShipmentStatus(v)
		filter.Status = &status
	}
	if v := c.Query("direction"); v != "" {
		direction := models.ShipmentDirection(v)
		filter.Direction = &direction
	}

	shipments, err := models.GetShipments(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "shipment", "ListShipments", err)
		return
	}
	c.JSON(http.StatusOK, shipments)
}

func GetShipment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	shipment, err := models.GetShipment(c.Request.Context(), id)
	if err != nil {
		respondError(c, "shipment", "GetShipment", err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func CreateShipment(c *gin.Context) {
	var input models.NewShipment
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	shipment, err := models.CreateShipment(c.Request.Context(), &input, utils.Today())
	if err != nil {
		respondError(c, "shipment", "CreateShipment", err)
		return
	}
	c.JSON(http.StatusCreated, shipment)
}

func UpdateShipment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewShipment
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	shipment, err := models.UpdateShipment(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "shipment", "UpdateShipment", err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func UpdateShipmentStatus(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewTimelineEvent
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	shipment, err := models.UpdateShipmentStatus(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "shipment", "UpdateShipmentStatus", err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func DeleteShipment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	shipment, err := models.DeleteShipment(c.Request.Context(), id)
	if err != nil {
		respondError(c, "shipment", "DeleteShipment", err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}
