package productcontroller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

// CreateProduct creates a new product with categories + image upload (admin).
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		name := c.PostForm("name")
		regularPriceStr := c.PostForm("regular_price")
		if name == "" || regularPriceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and regular_price are required"})
			return
		}

		regularPrice, err := strconv.ParseFloat(regularPriceStr, 64)
		if err != nil || regularPrice <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid regular_price"})
			return
		}

		// Optional fields
		description := c.PostForm("description")
		var salePrice float64
		if v := c.PostForm("sale_price"); v != "" {
			if sp, parseErr := strconv.ParseFloat(v, 64); parseErr == nil && sp >= 0 {
				salePrice = sp
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale_price"})
				return
			}
		}
		var stock int
		if v := c.PostForm("stock_quantity"); v != "" {
			if s, parseErr := strconv.Atoi(v); parseErr == nil && s >= 0 {
				stock = s
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_quantity"})
				return
			}
		}
		active := true
		if v := c.PostForm("active"); v != "" {
			if b, parseErr := strconv.ParseBool(v); parseErr == nil {
				active = b
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active flag"})
				return
			}
		}

		// Attribute options, e.g. {"size": "52,54,56", "color": "black,navy"}
		var options models.AttributeMap
		if v := c.PostForm("attribute_options"); v != "" {
			if err := json.Unmarshal([]byte(v), &options); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attribute_options"})
				return
			}
			if err := options.Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		// Categories
		var categories []models.Category
		if categoryIDsStr := c.PostForm("category_ids"); categoryIDsStr != "" {
			var parsedIDs []uint
			for _, tok := range strings.Split(categoryIDsStr, ",") {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				if id64, parseErr := strconv.ParseUint(tok, 10, 64); parseErr == nil {
					parsedIDs = append(parsedIDs, uint(id64))
				} else {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_ids format"})
					return
				}
			}
			if len(parsedIDs) > 0 {
				if err := db.Where("id IN ?", parsedIDs).Find(&categories).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
					return
				}
			}
		}

		// Image upload
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		imageURL, err := saveImage(c, file, "products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
			return
		}

		newProduct := models.Product{
			Name:             name,
			Description:      description,
			RegularPrice:     regularPrice,
			SalePrice:        salePrice,
			StockQuantity:    stock,
			Active:           active,
			AttributeOptions: options,
			Image:            imageURL,
			Categories:       categories,
		}
		if err := db.Create(&newProduct).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, newProduct)
	}
}
