package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookmarket/internal/application/book"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/infrastructure/storage"
	"github.com/xiebiao/bookmarket/internal/interface/http/dto"
	"github.com/xiebiao/bookmarket/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/response"
)

const coverField = "cover_image"

// formOverhead multipart中除文件以外的部分(字段与分隔符)
const formOverhead = 1 << 20

// BookHandler 图书HTTP处理器
type BookHandler struct {
	catalogUseCase   *appbook.ListCatalogUseCase
	myListUseCase    *appbook.ListMyBooksUseCase
	detailUseCase    *appbook.GetBookUseCase
	createUseCase    *appbook.CreateBookUseCase
	updateUseCase    *appbook.UpdateBookUseCase
	unpublishUseCase *appbook.UnpublishBookUseCase
	deleteUseCase    *appbook.DeleteBookUseCase
	maxUploadBytes   int64
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	catalogUseCase *appbook.ListCatalogUseCase,
	myListUseCase *appbook.ListMyBooksUseCase,
	detailUseCase *appbook.GetBookUseCase,
	createUseCase *appbook.CreateBookUseCase,
	updateUseCase *appbook.UpdateBookUseCase,
	unpublishUseCase *appbook.UnpublishBookUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
	maxUploadBytes int64,
) *BookHandler {
	return &BookHandler{
		catalogUseCase:   catalogUseCase,
		myListUseCase:    myListUseCase,
		detailUseCase:    detailUseCase,
		createUseCase:    createUseCase,
		updateUseCase:    updateUseCase,
		unpublishUseCase: unpublishUseCase,
		deleteUseCase:    deleteUseCase,
		maxUploadBytes:   maxUploadBytes,
	}
}

// Catalog 公开目录
// @Summary      图书目录
// @Description  已发布图书，支持按标题、简介、笔名(包含、不区分大小写)与价格区间过滤
// @Tags         图书
// @Produce      json,xml
// @Param        title            query string false "标题包含"
// @Param        description      query string false "简介包含"
// @Param        author_pseudonym query string false "笔名包含"
// @Param        min_price        query number false "最低价格(含)"
// @Param        max_price        query number false "最高价格(含)"
// @Success      200 {array}  appbook.BookResponse
// @Failure      400 {object} apperrors.AppError "价格参数不是数字"
// @Router       /api/v1/books/ [get]
func (h *BookHandler) Catalog(c *gin.Context) {
	filter, err := dto.BindCatalogQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.catalogUseCase.Execute(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, absoluteCovers(c, list...))
}

// MyList 当前作者的全部图书(含未发布)
// @Summary      我的图书
// @Tags         图书
// @Produce      json,xml
// @Security     BearerAuth
// @Success      200 {array}  appbook.BookResponse
// @Failure      401 {object} apperrors.AppError "未登录"
// @Router       /api/v1/books/mylist/ [get]
func (h *BookHandler) MyList(c *gin.Context) {
	list, err := h.myListUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, absoluteCovers(c, list...))
}

// Detail 图书详情
// @Summary      图书详情
// @Description  只能查看自己的图书，他人图书与不存在返回相同的404
// @Tags         图书
// @Produce      json,xml
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} appbook.BookResponse
// @Failure      401 {object} apperrors.AppError "未登录"
// @Failure      404 {object} apperrors.AppError "Book Not Found"
// @Router       /api/v1/books/detail/{id}/ [get]
func (h *BookHandler) Detail(c *gin.Context) {
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	resp, err := h.detailUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, absoluteCovers(c, resp)[0])
}

// Create 创建图书
// @Summary      创建图书
// @Description  作者为当前登录用户；published缺省为true
// @Tags         图书
// @Accept       multipart/form-data
// @Produce      json,xml
// @Security     BearerAuth
// @Param        title       formData string true  "标题(3-255字符)"
// @Param        description formData string true  "简介(至少3字符)"
// @Param        price       formData number true  "价格decimal(10,2)"
// @Param        published   formData bool   false "是否发布"
// @Param        cover_image formData file   false "封面图片"
// @Success      201 {object} appbook.BookResponse
// @Failure      400 {object} apperrors.AppError "参数错误"
// @Failure      401 {object} apperrors.AppError "未登录"
// @Router       /api/v1/books/create/ [post]
func (h *BookHandler) Create(c *gin.Context) {
	input, cover, err := h.bindBook(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.createUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		AuthorID:    middleware.MustGetUserID(c),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Published:   input.Published,
		Cover:       cover,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, absoluteCovers(c, resp)[0])
}

// Update 更新图书
// @Summary      更新图书
// @Description  整体更新标题、简介、价格；published与cover_image不传则保持原值
// @Tags         图书
// @Accept       multipart/form-data
// @Produce      json,xml
// @Security     BearerAuth
// @Param        id          path     int    true  "图书ID"
// @Param        title       formData string true  "标题(3-255字符)"
// @Param        description formData string true  "简介(至少3字符)"
// @Param        price       formData number true  "价格decimal(10,2)"
// @Param        published   formData bool   false "是否发布"
// @Param        cover_image formData file   false "封面图片"
// @Success      200 {object} appbook.BookResponse
// @Failure      400 {object} apperrors.AppError "参数错误"
// @Failure      401 {object} apperrors.AppError "未登录"
// @Failure      404 {object} apperrors.AppError "Book Not Found"
// @Router       /api/v1/books/update/{id}/ [put]
func (h *BookHandler) Update(c *gin.Context) {
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	input, cover, err := h.bindBook(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.updateUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		AuthorID:    middleware.MustGetUserID(c),
		BookID:      bookID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Published:   input.Published,
		Cover:       cover,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, absoluteCovers(c, resp)[0])
}

// Unpublish 下架图书
// @Summary      下架图书
// @Description  幂等，重复下架仍返回200
// @Tags         图书
// @Produce      json,xml
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {string} string "Book Unpublished"
// @Failure      401 {object} apperrors.AppError "未登录"
// @Failure      404 {object} apperrors.AppError "Book Not Found"
// @Router       /api/v1/books/unpublish/{id}/ [patch]
func (h *BookHandler) Unpublish(c *gin.Context) {
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	if err := h.unpublishUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), bookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Book Unpublished")
}

// Delete 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json,xml
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {string} string "Book Deleted"
// @Failure      401 {object} apperrors.AppError "未登录"
// @Failure      404 {object} apperrors.AppError "Book Not Found"
// @Router       /api/v1/books/delete/{id}/ [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), bookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Book Deleted")
}

// bindBook 读取表单与封面，两者的字段错误合并后一起返回
func (h *BookHandler) bindBook(c *gin.Context) (*dto.BookInput, *book.CoverUpload, error) {
	if err := h.parseForm(c); err != nil {
		return nil, nil, err
	}

	input, formErr := dto.BindBookForm(c).Validate()
	cover, coverErr := h.readCover(c)

	if err := dto.MergeFields(formErr, coverErr); err != nil {
		return nil, nil, err
	}
	return input, cover, nil
}

// parseForm 限制请求体大小并提前解析表单
// 超限时按封面字段报错，其余解析错误视为请求体格式错误
func (h *BookHandler) parseForm(c *gin.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+formOverhead)

	var err error
	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		err = c.Request.ParseMultipartForm(h.maxUploadBytes)
	} else {
		err = c.Request.ParseForm()
	}
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return storage.FileTooLarge(h.maxUploadBytes)
	}
	return apperrors.WithCode(err, apperrors.ErrCodeBindError, apperrors.ErrBindError.Message)
}

// readCover 未上传封面时返回nil
func (h *BookHandler) readCover(c *gin.Context) (*book.CoverUpload, error) {
	header, err := c.FormFile(coverField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperrors.FieldError(coverField, "The submitted data was not a file. Check the encoding type on the form.")
	}
	return storage.ReadCover(header, h.maxUploadBytes)
}

// bookIDParam 非数字ID与不存在的图书一样返回404
func bookIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, book.ErrBookNotFound)
		return 0, false
	}
	return uint(id), true
}

// absoluteCovers 本地存储返回的相对地址(/media/...)补全为完整URL
func absoluteCovers(c *gin.Context, list ...*appbook.BookResponse) []*appbook.BookResponse {
	for _, b := range list {
		if b.CoverImage == nil || !strings.HasPrefix(*b.CoverImage, "/") {
			continue
		}
		url := requestOrigin(c) + *b.CoverImage
		b.CoverImage = &url
	}
	return list
}

func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
