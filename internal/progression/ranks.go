package progression

// defaultRanks is the reference tier table. Thresholds grow roughly 16% per tier.
var defaultRanks = []Rank{
	{Name: "転生者", MinXP: 0},
	{Name: "村人Lv.1", MinXP: 100},
	{Name: "村人Lv.5", MinXP: 216},
	{Name: "村人Lv.10", MinXP: 352},
	{Name: "村人Lv.MAX", MinXP: 510},
	{Name: "街人", MinXP: 694},
	{Name: "道具屋の常連", MinXP: 909},
	{Name: "ギルドの新人", MinXP: 1160},
	{Name: "スライムハンター", MinXP: 1451},
	{Name: "ゴブリンスレイヤー", MinXP: 1791},
	{Name: "銅級冒険者", MinXP: 2187},
	{Name: "鉄級冒険者", MinXP: 2649},
	{Name: "銀級冒険者", MinXP: 3187},
	{Name: "金級冒険者", MinXP: 3813},
	{Name: "白金級冒険者", MinXP: 4543},
	{Name: "ミスリル級", MinXP: 5392},
	{Name: "オリハルコン級", MinXP: 6382},
	{Name: "アダマンタイト級", MinXP: 7534},
	{Name: "冒険者王", MinXP: 8876},
	{Name: "ギルドマスター", MinXP: 10439},
	{Name: "下級兵士", MinXP: 12258},
	{Name: "下級魔導士", MinXP: 14376},
	{Name: "下級剣士", MinXP: 16843},
	{Name: "下級格闘家", MinXP: 19714},
	{Name: "下級精霊使い", MinXP: 23058},
	{Name: "中級兵士", MinXP: 26951},
	{Name: "中級魔導士", MinXP: 31484},
	{Name: "中級剣士", MinXP: 36762},
	{Name: "中級格闘家", MinXP: 42907},
	{Name: "中級精霊使い", MinXP: 50063},
	{Name: "上級兵士", MinXP: 58394},
	{Name: "上級魔導士", MinXP: 68094},
	{Name: "上級剣士", MinXP: 79387},
	{Name: "上級格闘家", MinXP: 92536},
	{Name: "上級精霊使い", MinXP: 107845},
	{Name: "特級兵士", MinXP: 125669},
	{Name: "特級魔導士", MinXP: 146422},
	{Name: "特級剣士", MinXP: 170584},
	{Name: "特級格闘家", MinXP: 198716},
	{Name: "特級精霊使い", MinXP: 231471},
	{Name: "近衛騎士", MinXP: 269608},
	{Name: "真・近衛騎士", MinXP: 314011},
	{Name: "宮廷魔術師", MinXP: 365709},
	{Name: "真・宮廷魔術師", MinXP: 425902},
	{Name: "ドラゴンナイト", MinXP: 495984},
	{Name: "真・ドラゴンナイト", MinXP: 577580},
	{Name: "ネクロマンサー", MinXP: 672580},
	{Name: "真・ネクロマンサー", MinXP: 783188},
	{Name: "サモナー", MinXP: 911964},
	{Name: "真・サモナー", MinXP: 1061895},
	{Name: "将軍", MinXP: 1236458},
	{Name: "大将軍", MinXP: 1439698},
	{Name: "元帥", MinXP: 1676326},
	{Name: "大元帥", MinXP: 1951833},
	{Name: "宰相", MinXP: 2272598},
	{Name: "大宰相", MinXP: 2646061},
	{Name: "国王", MinXP: 3080880},
	{Name: "大国王", MinXP: 3587131},
	{Name: "皇帝", MinXP: 4176548},
	{Name: "大皇帝", MinXP: 4862794},
	{Name: "覚醒者Lv.60", MinXP: 5661769},
	{Name: "覚醒者Lv.61", MinXP: 6591998},
	{Name: "覚醒者Lv.62", MinXP: 7675039},
	{Name: "覚醒者Lv.63", MinXP: 8935987},
	{Name: "覚醒者Lv.64", MinXP: 10404111},
	{Name: "覚醒者Lv.65", MinXP: 12113426},
	{Name: "覚醒者Lv.66", MinXP: 14103554},
	{Name: "覚醒者Lv.67", MinXP: 16420625},
	{Name: "覚醒者Lv.68", MinXP: 19118318},
	{Name: "覚醒者Lv.69", MinXP: 22259114},
	{Name: "覚醒者Lv.70", MinXP: 25915837},
	{Name: "覚醒者Lv.71", MinXP: 30173169},
	{Name: "覚醒者Lv.72", MinXP: 35129965},
	{Name: "覚醒者Lv.73", MinXP: 40901069},
	{Name: "覚醒者Lv.74", MinXP: 47620224},
	{Name: "覚醒者Lv.75", MinXP: 55443187},
	{Name: "覚醒者Lv.76", MinXP: 64551322},
	{Name: "覚醒者Lv.77", MinXP: 75155700},
	{Name: "覚醒者Lv.78", MinXP: 87502181},
	{Name: "覚醒者Lv.79", MinXP: 101876939},
	{Name: "覚醒者Lv.80", MinXP: 118613437},
	{Name: "覚醒者Lv.81", MinXP: 138099395},
	{Name: "覚醒者Lv.82", MinXP: 160786566},
	{Name: "覚醒者Lv.83", MinXP: 187200465},
	{Name: "覚醒者Lv.84", MinXP: 217953682},
	{Name: "覚醒者Lv.85", MinXP: 253759082},
	{Name: "覚醒者Lv.86", MinXP: 295445778},
	{Name: "覚醒者Lv.87", MinXP: 343980689},
	{Name: "覚醒者Lv.88", MinXP: 400488663},
	{Name: "覚醒者Lv.89", MinXP: 466280053},
	{Name: "覚醒者Lv.90", MinXP: 542879944},
	{Name: "覚醒者Lv.91", MinXP: 632064115},
	{Name: "覚醒者Lv.92", MinXP: 735898864},
	{Name: "覚醒者Lv.93", MinXP: 856791696},
	{Name: "覚醒者Lv.94", MinXP: 997545168},
	{Name: "覚醒者Lv.95", MinXP: 1161421711},
	{Name: "覚醒者Lv.96", MinXP: 1352219766},
	{Name: "覚醒者Lv.97", MinXP: 1574364023},
	{Name: "覚醒者Lv.98", MinXP: 1833003460},
	{Name: "覚醒者Lv.99", MinXP: 2134131551},
	{Name: "英雄の卵", MinXP: 2484729090},
	{Name: "小国の英雄", MinXP: 2892928509},
	{Name: "王国の英雄", MinXP: 3368187848},
	{Name: "帝国の英雄", MinXP: 3921516223},
	{Name: "大陸の英雄", MinXP: 4565744431},
	{Name: "世界の英雄", MinXP: 5315801967},
	{Name: "伝説の勇者", MinXP: 6189078602},
	{Name: "真の勇者", MinXP: 7205809765},
	{Name: "救世主", MinXP: 8389569485},
	{Name: "メシア", MinXP: 9767812975},
	{Name: "人間国宝", MinXP: 11372473489},
	{Name: "生きる伝説", MinXP: 13240751965},
	{Name: "歴史の特異点", MinXP: 15415951834},
	{Name: "神話の住人", MinXP: 17948493188},
	{Name: "半神半人", MinXP: 20897089456},
	{Name: "亜神", MinXP: 24329976378},
	{Name: "現人神", MinXP: 28326798033},
	{Name: "守護神", MinXP: 32980227181},
	{Name: "武神", MinXP: 38398188151},
	{Name: "軍神", MinXP: 44706240292},
	{Name: "魔神", MinXP: 52050588628},
	{Name: "邪神", MinXP: 60601366114},
	{Name: "破壊神", MinXP: 70556858349},
	{Name: "創造神", MinXP: 82147856755},
	{Name: "天界の住人", MinXP: 95643034870},
	{Name: "天使長", MinXP: 111355207758},
	{Name: "大天使", MinXP: 129648624107},
	{Name: "熾天使", MinXP: 150947271954},
	{Name: "堕天使", MinXP: 175744634860},
	{Name: "魔界の王", MinXP: 204615783515},
	{Name: "半神", MinXP: 238229864273},
	{Name: "下級神", MinXP: 277366173264},
	{Name: "中級神", MinXP: 322931980327},
	{Name: "上級神", MinXP: 375983790938},
	{Name: "主神", MinXP: 437750734080},
	{Name: "創造神", MinXP: 509664971701},
	{Name: "全知全能", MinXP: 593393282439},
	{Name: "星の意志", MinXP: 690876793666},
	{Name: "太陽の化身", MinXP: 804375001925},
	{Name: "銀河の覇者", MinXP: 936517651037},
	{Name: "宇宙の帝王", MinXP: 1090367350796},
	{Name: "時空の支配者", MinXP: 1269492160677},
	{Name: "次元の超越者", MinXP: 1478044733364},
	{Name: "並行世界の観測者", MinXP: 1720857329431},
	{Name: "因果律の管理者", MinXP: 2003559385558},
	{Name: "運命の紡ぎ手", MinXP: 2332704250228},
	{Name: "終焉を告げる者", MinXP: 2715923122176},
	{Name: "始まりの者", MinXP: 3162100874944},
	{Name: "無限", MinXP: 3681585293678},
	{Name: "虚無", MinXP: 4286411520698},
	{Name: "特異点", MinXP: 4990600868856},
	{Name: "事象の地平線", MinXP: 5810476839352},
	{Name: "ビッグバン", MinXP: 6765042857431},
	{Name: "ユニバース", MinXP: 7876426742511},
	{Name: "マルチバース", MinXP: 9170367364121},
	{Name: "オムニバース", MinXP: 10676882046835},
	{Name: "アカシックレコード", MinXP: 12430893084365},
	{Name: "概念的存在", MinXP: 14473060183187},
	{Name: "法則そのもの", MinXP: 16850709923831},
	{Name: "Bit", MinXP: 19618956920958},
	{Name: "Byte", MinXP: 22841973615598},
	{Name: "Kilobyte", MinXP: 26594473855660},
	{Name: "Megabyte", MinXP: 30963442377319},
	{Name: "Gigabyte", MinXP: 36050116664536},
	{Name: "Terabyte", MinXP: 41972429469502},
	{Name: "Petabyte", MinXP: 48867673587424},
	{Name: "Exabyte", MinXP: 56895593139369},
	{Name: "Zettabyte", MinXP: 66242354780517},
	{Name: "Yottabyte", MinXP: 77124483733075},
	{Name: "Hello World", MinXP: 89794155106173},
	{Name: "Script Kiddie", MinXP: 104545163990623},
	{Name: "Programmer", MinXP: 121719409590822},
	{Name: "Hacker", MinXP: 141715077247734},
	{Name: "Senior Engineer", MinXP: 164995648873737},
	{Name: "Tech Lead", MinXP: 192100863073030},
	{Name: "CTO", MinXP: 223659424729146},
	{Name: "AI", MinXP: 260402422079029},
	{Name: "Super AI", MinXP: 303181829676579},
	{Name: "Singularity", MinXP: 352989260490795},
	{Name: "The Glitch", MinXP: 410979144365768},
	{Name: "404 Not Found", MinXP: 478495811354146},
	{Name: "Stack Overflow", MinXP: 557102660021659},
	{Name: "System Admin", MinXP: 648623194017367},
	{Name: "Root User", MinXP: 755178657613765},
	{Name: "超越者ランク196", MinXP: 879238350742511},
	{Name: "超越者ランク197", MinXP: 1023678502206677},
	{Name: "超越者ランク198", MinXP: 1191847144415519},
	{Name: "超越者ランク199", MinXP: 1387642646399086},
	{Name: "THE END", MinXP: 9999999999999999},
}
