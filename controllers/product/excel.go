package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

// ImportProductsFromExcel bulk creates/updates products from a spreadsheet
// (admin). Expected columns: ID, Name, Description, RegularPrice, SalePrice,
// StockQuantity, Active, CategoryIDs. A row with an ID updates the matching
// product; without one it creates a new product.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			description := get(2)
			regularPriceStr := get(3)
			salePriceStr := get(4)
			stockStr := get(5)
			activeStr := get(6)
			categoryIDsStr := get(7)

			if name == "" || regularPriceStr == "" {
				skippedCount++
				continue
			}
			regularPrice, err := strconv.ParseFloat(regularPriceStr, 64)
			if err != nil || regularPrice <= 0 {
				skippedCount++
				continue
			}
			salePrice, _ := strconv.ParseFloat(salePriceStr, 64)
			stock, _ := strconv.Atoi(stockStr)
			active := true
			if activeStr != "" {
				if b, parseErr := strconv.ParseBool(activeStr); parseErr == nil {
					active = b
				}
			}

			var categories []models.Category
			if categoryIDsStr != "" {
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
					db.Where("id IN ?", parsedIDs).Find(&categories)
				}
			}

			if idStr != "" {
				id, parseErr := strconv.ParseUint(idStr, 10, 64)
				if parseErr != nil {
					skippedCount++
					continue
				}
				var product models.Product
				if err := db.First(&product, id).Error; err != nil {
					skippedCount++
					continue
				}
				product.Name = name
				product.Description = description
				product.RegularPrice = regularPrice
				product.SalePrice = salePrice
				product.StockQuantity = stock
				product.Active = active
				if len(categories) > 0 {
					db.Model(&product).Association("Categories").Replace(categories)
				}
				if err := db.Save(&product).Error; err != nil {
					skippedCount++
					continue
				}
				updatedCount++
			} else {
				product := models.Product{
					Name:          name,
					Description:   description,
					RegularPrice:  regularPrice,
					SalePrice:     salePrice,
					StockQuantity: stock,
					Active:        active,
					Categories:    categories,
				}
				if err := db.Create(&product).Error; err != nil {
					skippedCount++
					continue
				}
				createdCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"created": createdCount,
			"updated": updatedCount,
			"skipped": skippedCount,
		})
	}
}
