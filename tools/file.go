package tools

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SendExcel 以附件形式输出工作簿
func SendExcel(c *gin.Context, f *excelize.File, displayName string) error {
	escaped := url.QueryEscape(displayName)

	c.Header("Content-Type", ExcelContentType)
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, escaped, escaped),
	)
	c.Status(http.StatusOK)
	return f.Write(c.Writer)
}
