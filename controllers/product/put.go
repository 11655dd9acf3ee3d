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

// UpdateProduct updates an existing product by ID (admin). Accepts the same
// fields as CreateProduct, all optional, plus an optional "image" file.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Categories").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		parseFloat := func(val string) *float64 {
			if val == "" {
				return nil
			}
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				return &f
			}
			return nil
		}

		if v := c.PostForm("name"); v != "" {
			product.Name = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := parseFloat(c.PostForm("regular_price")); v != nil && *v > 0 {
			product.RegularPrice = *v
		}
		if v := parseFloat(c.PostForm("sale_price")); v != nil && *v >= 0 {
			product.SalePrice = *v
		}
		if v := c.PostForm("stock_quantity"); v != "" {
			if s, parseErr := strconv.Atoi(v); parseErr == nil && s >= 0 {
				product.StockQuantity = s
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_quantity"})
				return
			}
		}
		if v := c.PostForm("active"); v != "" {
			if b, parseErr := strconv.ParseBool(v); parseErr == nil {
				product.Active = b
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active flag"})
				return
			}
		}
		if v := c.PostForm("attribute_options"); v != "" {
			var options models.AttributeMap
			if err := json.Unmarshal([]byte(v), &options); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attribute_options"})
				return
			}
			if err := options.Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			product.AttributeOptions = options
		}

		if categoryIDsStr := c.PostForm("category_ids"); categoryIDsStr != "" {
			var parsedIDs []uint
			for _, tok := range strings.Split(categoryIDsStr, ",") {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				if id64, parseErr := strconv.ParseUint(tok, 10, 64); parseErr == nil {
					parsedIDs = append(parsedIDs, uint(id64))
				}
			}
			if len(parsedIDs) > 0 {
				var categories []models.Category
				if err := db.Where("id IN ?", parsedIDs).Find(&categories).Error; err == nil {
					if err := db.Model(&product).Association("Categories").Replace(categories); err != nil {
						c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update categories"})
						return
					}
				}
			}
		}

		if file, err := c.FormFile("image"); err == nil {
			imageURL, saveErr := saveImage(c, file, "products")
			if saveErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				return
			}
			product.Image = imageURL
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
