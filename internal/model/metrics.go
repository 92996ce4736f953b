// Package model 定义 codelines 的核心数据模型。
// 这些结构会被分类器、扫描器、输出层和命令层共同使用。
package model

// LineCounts 表示一组行级统计值。
//
// 注意：
// - Total 恒等于 Blank + Comments + Code（每行只落入三者之一）
// - Imports/Declarations/Loops 是代码行上的附加标签，不与 Code 互斥，
//   同一行代码可以同时命中多个标签，也不会额外计入 Total
type LineCounts struct {
	Blank        int64 `json:"blank"`
	Comments     int64 `json:"comments"`
	Code         int64 `json:"code"`
	Imports      int64 `json:"imports"`
	Declarations int64 `json:"declarations"`
	Loops        int64 `json:"loops"`
	Total        int64 `json:"total"`
}

// Add 将另一个统计结果逐字段叠加到当前对象。
func (c *LineCounts) Add(other LineCounts) {
	c.Blank += other.Blank
	c.Comments += other.Comments
	c.Code += other.Code
	c.Imports += other.Imports
	c.Declarations += other.Declarations
	c.Loops += other.Loops
	c.Total += other.Total
}

// Consistent 校验统计值的不变量：
// Total 等于三类行之和，且每个标签计数都不超过 Code。
func (c LineCounts) Consistent() bool {
	if c.Total != c.Blank+c.Comments+c.Code {
		return false
	}
	return c.Imports <= c.Code && c.Declarations <= c.Code && c.Loops <= c.Code
}

// IsZero 判断是否为空统计。
func (c LineCounts) IsZero() bool {
	return c == LineCounts{}
}
