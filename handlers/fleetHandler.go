package handlers

import (
	"net/http"

	"bitbucket.org/indofreight/freight_backend/models"
	"github.com/gin-gonic/gin"
)

func ListVehicles(c *gin.Context) {
	vehicles, err := models.GetVehicles(c.Request.Context(), queryString(c, "registration"))
	if err != nil {
		respondError(c, "vehicle", "ListVehicles", err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func GetVehicle(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	vehicle, err := models.GetVehicle(c.Request.Context(), id)
	if err != nil {
		respondError(c, "vehicle", "GetVehicle", err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func CreateVehicle(c *gin.Context) {
	var input models.NewVehicle
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	vehicle, err := models.CreateVehicle(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "vehicle", "CreateVehicle", err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func UpdateVehicle(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewVehicle
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	vehicle, err := models.UpdateVehicle(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "vehicle", "UpdateVehicle", err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func DeleteVehicle(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	vehicle, err := models.DeleteVehicle(c.Request.Context(), id)
	if err != nil {
		respondError(c, "vehicle", "DeleteVehicle", err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func ListDrivers(c *gin.Context) {
	drivers, err := models.GetDrivers(c.Request.Context(), queryString(c, "name"))
	if err != nil {
		respondError(c, "driver", "ListDrivers", err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func GetDriver(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	driver, err := models.GetDriver(c.Request.Context(), id)
	if err != nil {
		respondError(c, "driver", "GetDriver", err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func CreateDriver(c *gin.Context) {
	var input models.NewDriver
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	driver, err := models.CreateDriver(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "driver", "CreateDriver", err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func UpdateDriver(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewDriver
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	driver, err := models.UpdateDriver(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "driver", "UpdateDriver", err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func DeleteDriver(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	driver, err := models.DeleteDriver(c.Request.Context(), id)
	if err != nil {
		respondError(c, "driver", "DeleteDriver", err)
		return
	}
	c.JSON(http.StatusOK, driver)
}
