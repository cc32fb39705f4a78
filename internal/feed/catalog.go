package feed

// DefaultCatalog is the built-in feed catalog. It is orchestration data: the
// yaml config may replace it wholesale.
func DefaultCatalog() Catalog {
	return Catalog{
		"italian_news": {
			Name:        "Italian News Feeds",
			Description: "Major Italian news sources",
			Feeds: []Source{
				{Name: "ANSA", URL: "https://www.ansa.it/sito/notizie/topnews/topnews_rss.xml"},
				{Name: "Corriere della Sera", URL: "https://xml2.corriereobjects.it/feed-hp/homepage.xml"},
				{Name: "La Repubblica", URL: "https://www.repubblica.it/rss/homepage/rss2.0.xml"},
				{Name: "Il Sole 24 Ore", URL: "https://www.ilsole24ore.com/rss/notizie.xml"},
				{Name: "La Gazzetta dello Sport", URL: "https://www.gazzetta.it/rss/home.xml"},
				{Name: "Sky TG24", URL: "https://tg24.sky.it/rss/tg24_homepage.xml"},
			},
		},
		"international_news": {
			Name:        "International News Feeds",
			Description: "Global news sources in English",
			Feeds: []Source{
				{Name: "BBC News", URL: "https://feeds.bbci.co.uk/news/rss.xml"},
				{Name: "CNN", URL: "https://rss.cnn.com/rss/edition.rss"},
				{Name: "Reuters", URL: "https://feeds.reuters.com/reuters/topNews"},
				{Name: "Associated Press", URL: "https://feeds.apnews.com/rss/apf-topnews"},
				{Name: "The Guardian", URL: "https://www.theguardian.com/world/rss"},
				{Name: "NPR News", URL: "https://feeds.npr.org/1001/rss.xml"},
			},
		},
		"tech_news": {
			Name:        "Technology News Feeds",
			Description: "Technology and startup news",
			Feeds: []Source{
				{Name: "TechCrunch", URL: "https://techcrunch.com/feed/"},
				{Name: "Hacker News", URL: "https://hnrss.org/frontpage"},
				{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/index"},
				{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml"},
				{Name: "Wired", URL: "https://www.wired.com/feed/rss"},
				{Name: "Engadget", URL: "https://www.engadget.com/rss.xml"},
			},
		},
		"business_news": {
			Name:        "Business News Feeds",
			Description: "Financial and business news",
			Feeds: []Source{
				{Name: "Bloomberg", URL: "https://feeds.bloomberg.com/markets/news.rss"},
				{Name: "Financial Times", URL: "https://www.ft.com/rss/home"},
				{Name: "Wall Street Journal", URL: "https://www.wsj.com/xml/rss/3_7085.xml"},
				{Name: "MarketWatch", URL: "https://feeds.marketwatch.com/marketwatch/topstories/"},
				{Name: "Forbes", URL: "https://www.forbes.com/real-time/feed2/"},
				{Name: "CNBC", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html"},
			},
		},
		"science_news": {
			Name:        "Science News Feeds",
			Description: "Science and research news",
			Feeds: []Source{
				{Name: "Science Daily", URL: "https://www.sciencedaily.com/rss/all.xml"},
				{Name: "Nature News", URL: "https://www.nature.com/nature.rss"},
				{Name: "Scientific American", URL: "https://rss.sciam.com/ScientificAmerican-Global"},
				{Name: "New Scientist", URL: "https://www.newscientist.com/feed/home/"},
				{Name: "Phys.org", URL: "https://phys.org/rss-feed/"},
				{Name: "Space.com", URL: "https://www.space.com/feeds/all"},
			},
		},
	}
}
