package handlers

import (
	"net/http"

	"bitbucket.org/indofreight/freight_backend/models"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/gin-gonic/gin"
)

func ListQuotes(c *gin.Context) {
	filter := models.QuoteFilter{Search: queryString(c, "search")}
	if v := c.Query("status"); v != "" {
		status := models.QuoteStatus(v)
		filter.Status = &status
	}

	quotes, err := models.GetQuotes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "quote", "ListQuotes", err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

func GetQuote(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	quote, err := models.GetQuote(c.Request.Context(), id)
	if err != nil {
		respondError(c, "quote", "GetQuote", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func CreateQuote(c *gin.Context) {
	var input models.NewQuote
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	quote, err := models.CreateQuote(c.Request.Context(), &input, utils.Today())
	if err != nil {
		respondError(c, "quote", "CreateQuote", err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func UpdateQuote(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewQuote
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	quote, err := models.UpdateQuote(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "quote", "UpdateQuote", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

type quoteStatusInput struct {
	Status models.QuoteStatus `json:"status" binding:"required"`
}

func UpdateQuoteStatus(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input quoteStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	quote, err := models.UpdateQuoteStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		respondError(c, "quote", "UpdateQuoteStatus", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func DeleteQuote(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	quote, err := models.DeleteQuote(c.Request.Context(), id)
	if err != nil {
		respondError(c, "quote", "DeleteQuote", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
