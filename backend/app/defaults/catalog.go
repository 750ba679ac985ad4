package defaults

// QuickLink and SearchEngine are catalog entries, not rows.
type QuickLink struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Category string `json:"category"`
}

type SearchEngine struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	URLTemplate string `json:"url_template"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsActive    bool   `json:"is_active"`
	IsDefault   bool   `json:"is_default"`
	SortOrder   int    `json:"sort_order"`
}

type Catalog struct {
	QuickLinks    []QuickLink    `json:"quickLinks"`
	SearchEngines []SearchEngine `json:"searchEngines"`
	Categories    []string       `json:"categories"`
}

// Builtin returns a fresh copy of the compiled-in catalog.
func Builtin() Catalog {
	return Catalog{
		QuickLinks: []QuickLink{
			{Name: "百度", URL: "https://www.baidu.com", Icon: "fas fa-search", Color: "#007DFF", Category: "搜索"},
			{Name: "Google", URL: "https://www.google.com", Icon: "fab fa-google", Color: "#EA4335", Category: "搜索"},
			{Name: "必应", URL: "https://www.bing.com", Icon: "fab fa-microsoft", Color: "#00BCF2", Category: "搜索"},
			{Name: "微信", URL: "https://wx.qq.com", Icon: "fab fa-weixin", Color: "#07C160", Category: "社交"},
			{Name: "微博", URL: "https://weibo.com", Icon: "fab fa-weibo", Color: "#E6162D", Category: "社交"},
			{Name: "淘宝", URL: "https://www.taobao.com", Icon: "fas fa-shopping-cart", Color: "#FF4400", Category: "购物"},
			{Name: "京东", URL: "https://www.jd.com", Icon: "fas fa-shopping-bag", Color: "#E93323", Category: "购物"},
			{Name: "爱奇艺", URL: "https://www.iqiyi.com", Icon: "fas fa-play-circle", Color: "#00BE06", Category: "影视"},
			{Name: "腾讯视频", URL: "https://v.qq.com", Icon: "fas fa-video", Color: "#FF6700", Category: "影视"},
			{Name: "GitHub", URL: "https://github.com", Icon: "fab fa-github", Color: "#24292E", Category: "开发"},
			{Name: "Stack Overflow", URL: "https://stackoverflow.com", Icon: "fab fa-stack-overflow", Color: "#F48024", Category: "开发"},
			{Name: "知乎", URL: "https://www.zhihu.com", Icon: "fab fa-zhihu", Color: "#0084FF", Category: "学习"},
			{Name: "CSDN", URL: "https://www.csdn.net", Icon: "fas fa-code", Color: "#FC5531", Category: "学习"},
			{Name: "网易云音乐", URL: "https://music.163.com", Icon: "fas fa-music", Color: "#C20C0C", Category: "音乐"},
			{Name: "QQ音乐", URL: "https://y.qq.com", Icon: "fas fa-headphones", Color: "#31C27C", Category: "音乐"},
			{Name: "新浪新闻", URL: "https://news.sina.com.cn", Icon: "fas fa-newspaper", Color: "#D52B1E", Category: "新闻"},
			{Name: "腾讯新闻", URL: "https://news.qq.com", Icon: "fas fa-rss", Color: "#0052D9", Category: "新闻"},
			{Name: "百度图片", URL: "https://image.baidu.com", Icon: "fas fa-images", Color: "#4285F4", Category: "图片"},
			{Name: "翻译", URL: "https://translate.google.com", Icon: "fas fa-language", Color: "#34A853", Category: "工具"},
		},
		SearchEngines: []SearchEngine{
			{Name: "baidu", DisplayName: "百度", URLTemplate: "https://www.baidu.com/s?wd={query}", Icon: "fas fa-search", Color: "#007DFF", IsActive: true, IsDefault: true, SortOrder: 1},
			{Name: "google", DisplayName: "Google", URLTemplate: "https://www.google.com/search?q={query}", Icon: "fab fa-google", Color: "#EA4335", IsActive: true, SortOrder: 2},
			{Name: "bing", DisplayName: "必应", URLTemplate: "https://www.bing.com/search?q={query}", Icon: "fab fa-microsoft", Color: "#00BCF2", IsActive: true, SortOrder: 3},
			{Name: "sogou", DisplayName: "搜狗", URLTemplate: "https://www.sogou.com/web?query={query}", Icon: "fas fa-search", Color: "#FF6B00", IsActive: true, SortOrder: 4},
			{Name: "duckduckgo", DisplayName: "DuckDuckGo", URLTemplate: "https://duckduckgo.com/?q={query}", Icon: "fas fa-user-secret", Color: "#DE5833", IsActive: true, SortOrder: 5},
		},
		Categories: []string{"搜索", "社交", "购物", "影视", "游戏", "学习", "工具", "新闻", "音乐", "图片", "开发", "其他"},
	}
}
