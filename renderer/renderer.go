package renderer

// Renderer 将一段文本输出为最终的图像字节，例如 JPEG。
// Render 返回编码后的二进制数据以及可能的错误。
type Renderer interface {
	Render(text string) ([]byte, error)
}
