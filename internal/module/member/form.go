package member

import (
	"mime/multipart"
	"strconv"

	"lab-website/internal/global/form"
	"lab-website/internal/global/pictureBed"
	"lab-website/internal/model"

	"github.com/gin-gonic/gin"
)

// DefaultDisplayOrder 未填写排序时的取值，与 Input.DisplayOrder 的 default 一致
const DefaultDisplayOrder = 100

// Input 新建与编辑共用的成员表单
type Input struct {
	Name         string           `form:"name" binding:"required,max=100"`
	NameEn       *string          `form:"name_en" binding:"omitempty,max=100"`
	Role         model.MemberRole `form:"role" binding:"required,enum"`
	Email        string           `form:"email" binding:"required,max=255,email"`
	PhotoURL     *string          `form:"photo_url" binding:"omitempty,max=500"`
	Bio          *string          `form:"bio" binding:"omitempty,max=2000"`
	BioEn        *string          `form:"bio_en" binding:"omitempty,max=2000"`
	DisplayOrder int              `form:"display_order,default=100" binding:"gte=0"`

	// Photo 上传的头像，存储成功后覆盖 PhotoURL
	Photo *multipart.FileHeader `form:"-" binding:"-"`
}

func parse(c *gin.Context) (*Input, error) {
	in := &Input{}
	err := form.Bind(c, in, form.WithFallback("name", "name_en"))

	if fh, ferr := c.FormFile("photo"); ferr == nil {
		if _, cerr := pictureBed.Check(fh); cerr != nil {
			err = form.AddField(err, "photo", "Must be a JPEG, PNG, GIF or WebP image up to 5 MB")
		} else {
			in.Photo = fh
		}
	}
	return in, err
}

func (in *Input) apply(m *model.Member) {
	m.Name = in.Name
	m.NameEn = in.NameEn
	m.Role = in.Role
	m.Email = in.Email
	m.PhotoURL = in.PhotoURL
	m.Bio = in.Bio
	m.BioEn = in.BioEn
	m.DisplayOrder = in.DisplayOrder
}

// values 编辑页初始值
func values(m *model.Member) map[string]string {
	return map[string]string{
		"name":          m.Name,
		"name_en":       form.Deref(m.NameEn),
		"role":          string(m.Role),
		"email":         m.Email,
		"photo_url":     form.Deref(m.PhotoURL),
		"bio":           form.Deref(m.Bio),
		"bio_en":        form.Deref(m.BioEn),
		"display_order": strconv.Itoa(m.DisplayOrder),
	}
}
