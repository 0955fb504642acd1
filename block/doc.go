// Package block 定义导入载荷中的文本块、块类型到排版样式的静态映射，
// 以及把单个块规范化为最终字符内容的规则。
//
// 载荷是 JSON 数组，每个元素形如：
//
//	{"type": "h2", "text": "Problem", "id": "b-1"}
//	{"type": "list", "items": ["a", "b"]}   // 旧格式
//	{"type": "list", "text": "a"}           // 新格式
//
// 两种列表格式需要长期兼容。形状不合法的单个块不会中断导入，只会被跳过。
package block
