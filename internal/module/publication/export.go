package publication

import (
	"fmt"
	"time"

	"lab-website/internal/global/logger"
	"lab-website/internal/global/response"
	"lab-website/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Publications"

// Export 导出全部论文为 xlsx
func Export(c *gin.Context) {
	pubs, err := exporter.repo.List(c.Request.Context(), nil)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Error("关闭工作簿失败", "error", err)
		}
	}()

	if err := tools.ExportToExcel(f, exportSheet, pubs); err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	// 去掉默认工作表
	if err := f.DeleteSheet("Sheet1"); err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	idx, err := f.GetSheetIndex(exportSheet)
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	f.SetActiveSheet(idx)

	name := fmt.Sprintf("publications-%s.xlsx", time.Now().UTC().Format("20060102"))
	if err := tools.SendExcel(c, f, name); err != nil {
		logger.WithContext(log, c).Error("导出论文失败", "error", err)
		return
	}
	logger.WithContext(log, c).Info("导出论文", "count", len(pubs))
}
