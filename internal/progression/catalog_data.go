package progression

var defaultCatalog = []Upgrade{
	{ID: "mouse", Name: "ゲーミングマウス", Description: "クリック効率が少し上がります", BaseCost: 500, Effect: Effect{Kind: EffectClick, Amount: 2}},
	{ID: "coffee", Name: "淹れたてコーヒー", Description: "カフェインで集中力アップ", BaseCost: 800, Effect: Effect{Kind: EffectAuto, Amount: 0.5}},
	{ID: "energy_drink", Name: "エナジードリンク", Description: "一時的な翼を授ける", BaseCost: 1500, Effect: Effect{Kind: EffectAuto, Amount: 1.5}},
	{ID: "cushion", Name: "低反発クッション", Description: "お尻への負担を軽減", BaseCost: 2000, Effect: Effect{Kind: EffectAuto, Amount: 2}},
	{ID: "textbook", Name: "技術書", Description: "知識は力なり", BaseCost: 2500, Effect: Effect{Kind: EffectAuto, Amount: 3}},
	{ID: "blue_light", Name: "PCメガネ", Description: "目の疲れをガード", BaseCost: 3500, Effect: Effect{Kind: EffectAuto, Amount: 4}},
	{ID: "ai", Name: "AIマネージャー", Description: "スケジュール管理はお手の物", BaseCost: 5000, Effect: Effect{Kind: EffectAuto, Amount: 5}},
	{ID: "keyboard", Name: "メカニカルキーボード", Description: "打鍵音が心地よい", BaseCost: 8500, Effect: Effect{Kind: EffectAuto, Amount: 10}},
	{ID: "ssd", Name: "NVMe SSD", Description: "ロード時間を短縮", BaseCost: 12000, Effect: Effect{Kind: EffectAuto, Amount: 15}},
	{ID: "drone", Name: "自動化ドローン", Description: "空から監視・管理", BaseCost: 15000, Effect: Effect{Kind: EffectAuto, Amount: 20}},
	{ID: "desk", Name: "昇降式デスク", Description: "立って作業して健康維持", BaseCost: 22000, Effect: Effect{Kind: EffectAuto, Amount: 30}},
	{ID: "monitor", Name: "デュアルモニター", Description: "作業効率が倍増", BaseCost: 30000, Effect: Effect{Kind: EffectAuto, Amount: 45}},
	{ID: "chair", Name: "高級オフィスチェア", Description: "アーロンな座り心地", BaseCost: 40000, Effect: Effect{Kind: EffectAuto, Amount: 60}},
	{ID: "server", Name: "量子サーバー", Description: "超高速処理を実現", BaseCost: 50000, Effect: Effect{Kind: EffectAuto, Amount: 100}},
	{ID: "vr_headset", Name: "VRワークスペース", Description: "無限の仮想モニター", BaseCost: 65000, Effect: Effect{Kind: EffectAuto, Amount: 150}},
	{ID: "copilot", Name: "GitHub Copilot", Description: "コード補完の神", BaseCost: 80000, Effect: Effect{Kind: EffectAuto, Amount: 200}},
	{ID: "fiber", Name: "専用光回線", Description: "ラグとは無縁の世界", BaseCost: 120000, Effect: Effect{Kind: EffectAuto, Amount: 300}},
	{ID: "bot_farm", Name: "Botファーム", Description: "大量のBotが作業代行", BaseCost: 150000, Effect: Effect{Kind: EffectAuto, Amount: 400}},
	{ID: "matrix", Name: "マトリックス接続", Description: "脳を直結して作業", BaseCost: 200000, Effect: Effect{Kind: EffectAuto, Amount: 500}},
	{ID: "satellite", Name: "通信衛星", Description: "宇宙からグローバル対応", BaseCost: 300000, Effect: Effect{Kind: EffectAuto, Amount: 800}},
	{ID: "cluster", Name: "GPUクラスター", Description: "並列処理の極み", BaseCost: 450000, Effect: Effect{Kind: EffectAuto, Amount: 1200}},
	{ID: "offshore", Name: "オフショア開発拠点", Description: "24時間止まらない開発", BaseCost: 600000, Effect: Effect{Kind: EffectAuto, Amount: 1800}},
	{ID: "supercomputer", Name: "スーパーコンピュータ", Description: "「京」を超える計算力", BaseCost: 800000, Effect: Effect{Kind: EffectAuto, Amount: 2500}},
	{ID: "singularity", Name: "技術的特異点", Description: "AIが自身を進化させる", BaseCost: 1000000, Effect: Effect{Kind: EffectAuto, Amount: 3000}},
	{ID: "android", Name: "汎用アンドロイド", Description: "不眠不休の労働力", BaseCost: 1500000, Effect: Effect{Kind: EffectAuto, Amount: 5000}},
	{ID: "fusion", Name: "核融合炉", Description: "無限のエネルギー供給", BaseCost: 2000000, Effect: Effect{Kind: EffectAuto, Amount: 7000}},
	{ID: "datacenter", Name: "月面データセンター", Description: "冷却効率が抜群", BaseCost: 2500000, Effect: Effect{Kind: EffectAuto, Amount: 8000}},
	{ID: "neura_link", Name: "電脳インプラント", Description: "思考速度でコーディング", BaseCost: 4000000, Effect: Effect{Kind: EffectAuto, Amount: 12000}},
	{ID: "space_elevator", Name: "宇宙エレベーター", Description: "物流の革命", BaseCost: 7000000, Effect: Effect{Kind: EffectAuto, Amount: 25000}},
	{ID: "godhand", Name: "神の手", Description: "触れるだけでコードが完成", BaseCost: 10000000, Effect: Effect{Kind: EffectAuto, Amount: 50000}},
	{ID: "cloning", Name: "自己クローン", Description: "自分を増やして分業", BaseCost: 20000000, Effect: Effect{Kind: EffectAuto, Amount: 80000}},
	{ID: "dysonsphere", Name: "ダイソン球", Description: "恒星のエネルギーを計算力に", BaseCost: 50000000, Effect: Effect{Kind: EffectAuto, Amount: 200000}},
	{ID: "warp", Name: "ワープ航法", Description: "納期の壁を超える", BaseCost: 100000000, Effect: Effect{Kind: EffectAuto, Amount: 400000}},
	{ID: "type3", Name: "Type-III 文明", Description: "銀河系全てのエネルギーを利用", BaseCost: 200000000, Effect: Effect{Kind: EffectAuto, Amount: 900000}},
	{ID: "blackhole", Name: "ブラックホール演算", Description: "事象の地平線で計算", BaseCost: 400000000, Effect: Effect{Kind: EffectAuto, Amount: 1500000}},
	{ID: "multiverse", Name: "多元宇宙マイニング", Description: "別次元のリソースを搾取", BaseCost: 800000000, Effect: Effect{Kind: EffectAuto, Amount: 3000000}},
	{ID: "akashic", Name: "アカシックレコード", Description: "全宇宙の記憶とコードにアクセス (UNIQUE)", BaseCost: 1000000000, Effect: Effect{Kind: EffectAuto, Amount: 5000000}, Unique: true},
	{ID: "planet_backup", Name: "惑星バックアップ", Description: "地球ごとGitでバージョン管理 (UNIQUE)", BaseCost: 2500000000, Effect: Effect{Kind: EffectAuto, Amount: 12000000}, Unique: true},
	{ID: "reality_editor", Name: "現実改変エディタ", Description: "物理法則をIDEで書き換える (UNIQUE)", BaseCost: 5000000000, Effect: Effect{Kind: EffectAuto, Amount: 30000000}, Unique: true},
	{ID: "life_api", Name: "生命創造API", Description: "new Life() で生物を生み出す (UNIQUE)", BaseCost: 10000000000, Effect: Effect{Kind: EffectAuto, Amount: 70000000}, Unique: true},
	{ID: "time_looper", Name: "無限のループ", Description: "時間を遡り作業時間を無限に確保 (UNIQUE)", BaseCost: 20000000000, Effect: Effect{Kind: EffectAuto, Amount: 150000000}, Unique: true},
	{ID: "karma_converter", Name: "カルマ変換機", Description: "徳を積んでXPに変換 (UNIQUE)", BaseCost: 50000000000, Effect: Effect{Kind: EffectAuto, Amount: 400000000}, Unique: true},
	{ID: "developer_god", Name: "創造主の端末", Description: "この世界そのものをデバッグ (UNIQUE)", BaseCost: 100000000000, Effect: Effect{Kind: EffectAuto, Amount: 1000000000}, Unique: true},
	{ID: "universe_fork", Name: "宇宙のフォーク", Description: "気に入らない世界線を分岐させる (UNIQUE)", BaseCost: 250000000000, Effect: Effect{Kind: EffectAuto, Amount: 2500000000}, Unique: true},
	{ID: "entropy_reverser", Name: "エントロピー逆転装置", Description: "覆水も盆に返る (UNIQUE)", BaseCost: 500000000000, Effect: Effect{Kind: EffectAuto, Amount: 6000000000}, Unique: true},
	{ID: "galactic_brain", Name: "銀河脳", Description: "銀河そのものをニューロンとして使用 (UNIQUE)", BaseCost: 1000000000000, Effect: Effect{Kind: EffectAuto, Amount: 15000000000}, Unique: true},
	{ID: "dimension_hopper", Name: "次元ホッパー", Description: "高次元から低次元を最適化 (UNIQUE)", BaseCost: 2500000000000, Effect: Effect{Kind: EffectAuto, Amount: 35000000000}, Unique: true},
	{ID: "the_answer", Name: "42", Description: "生命、宇宙、そして万物についての究極の答え (UNIQUE)", BaseCost: 7777777777777, Effect: Effect{Kind: EffectAuto, Amount: 77777777777}, Unique: true},
	{ID: "simulation_root", Name: "Root権限 (Universe)", Description: "sudo rm -rf /universe (UNIQUE)", BaseCost: 15000000000000, Effect: Effect{Kind: EffectAuto, Amount: 200000000000}, Unique: true},
	{ID: "bigbang_compiler", Name: "ビッグバンコンパイラ", Description: "無から有をビルドする (UNIQUE)", BaseCost: 30000000000000, Effect: Effect{Kind: EffectAuto, Amount: 500000000000}, Unique: true},
	{ID: "laplace_demon", Name: "ラプラスの悪魔", Description: "未来のバグを予知して修正 (UNIQUE)", BaseCost: 60000000000000, Effect: Effect{Kind: EffectAuto, Amount: 1200000000000}, Unique: true},
	{ID: "maxwell_demon", Name: "マクスウェルの悪魔", Description: "分子を選別して効率化 (UNIQUE)", BaseCost: 100000000000000, Effect: Effect{Kind: EffectAuto, Amount: 3000000000000}, Unique: true},
	{ID: "type4", Name: "Type-IV 文明", Description: "観測可能な全宇宙のエネルギー制御 (UNIQUE)", BaseCost: 250000000000000, Effect: Effect{Kind: EffectAuto, Amount: 8000000000000}, Unique: true},
	{ID: "type5", Name: "Type-V 文明", Description: "多元宇宙規模の支配 (UNIQUE)", BaseCost: 500000000000000, Effect: Effect{Kind: EffectAuto, Amount: 20000000000000}, Unique: true},
	{ID: "the_architect", Name: "アーキテクト", Description: "マトリックスの設計者 (UNIQUE)", BaseCost: 1000000000000000, Effect: Effect{Kind: EffectAuto, Amount: 50000000000000}, Unique: true},
	{ID: "deus_ex_machina", Name: "デウス・エクス・マキナ", Description: "機械仕掛けの神による強制解決 (UNIQUE)", BaseCost: 2500000000000000, Effect: Effect{Kind: EffectAuto, Amount: 150000000000000}, Unique: true},
	{ID: "true_null", Name: "完全なる虚無", Description: "NULLポインタの概念そのもの (UNIQUE)", BaseCost: 5000000000000000, Effect: Effect{Kind: EffectAuto, Amount: 400000000000000}, Unique: true},
	{ID: "omniscience", Name: "全知", Description: "全てのスタックオーバーフローを理解 (UNIQUE)", BaseCost: 10000000000000000, Effect: Effect{Kind: EffectAuto, Amount: 1000000000000000}, Unique: true},
	{ID: "omnipotence", Name: "全能", Description: "不可能な仕様変更も即座に実装 (UNIQUE)", BaseCost: 50000000000000000, Effect: Effect{Kind: EffectAuto, Amount: 5000000000000000}, Unique: true},
	{ID: "the_end", Name: "エンディング", Description: "開発終了。そして伝説へ... (UNIQUE)", BaseCost: 100000000000000000, Effect: Effect{Kind: EffectAuto, Amount: 10000000000000000}, Unique: true},
	{ID: "source_code", Name: "原初のソースコード", Description: "??? (UNIQUE)", BaseCost: 999999999999999999, Effect: Effect{Kind: EffectAuto, Amount: 99999999999999999}, Unique: true},
}
