// Package render assembles the complete HTML document for one day's page.
//
// Rendering is pure string substitution against a fixed template: same
// inputs, same bytes, every time. The one render function is parameterized
// by LinkContext instead of having separate "current" and "archived" code
// paths, so the two contexts can only ever differ in their path prefixes.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tianji-daily/internal/models"
)

const textbookPDF = "天机道教材.pdf"

// Input is everything a page needs. No clocks, no filesystem - the caller
// decides the date and the renderer just writes it down.
type Input struct {
	Module      models.Module
	Position    int // one-based display number from the rotation
	Total       int // module table size
	Archive     []models.ArchiveEntry
	Enhancement models.Enhancement
	Context     models.LinkContext
	Date        time.Time // the calendar date this page is for
	Start       time.Time // rotation start date, lower bound for calendar navigation
}

// Render produces the full HTML document text
func Render(in Input) string {
	m := in.Module

	progress := in.Position * 100 / in.Total

	months := buildYearCalendar(in.Date.Year(), in.Start, in.Date)
	monthsJSON := mustJSON(months)
	pageMonth := months[int(in.Date.Month())-1]

	r := strings.NewReplacer(
		"{{TITLE}}", m.Title,
		"{{DATE_DISPLAY}}", displayDate(in.Date),
		"{{MOTIVATION}}", in.Enhancement.Motivation,
		"{{DAILY_TIP}}", in.Enhancement.DailyTip,
		"{{CONNECTION_HINT}}", in.Enhancement.ConnectionHint,
		"{{POSITION}}", fmt.Sprint(in.Position),
		"{{TOTAL}}", fmt.Sprint(in.Total),
		"{{PROGRESS}}", fmt.Sprint(progress),
		"{{MODULE_ID}}", m.ID,
		"{{EPISODE}}", fmt.Sprint(m.Episode),
		"{{PAGES}}", m.TextbookPages.String(),
		"{{QUESTION}}", m.Question,
		"{{DEEPER_QUESTION}}", in.Enhancement.DeeperQuestion,
		"{{CONCEPTS}}", conceptTags(m.KeyConcepts),
		"{{PROMPT}}", m.PromptTemplate,
		"{{VIDEO_URL}}", m.VideoURL,
		"{{VIDEO_ID}}", videoID(m.VideoURL),
		"{{START_SEC}}", fmt.Sprint(timeToSeconds(m.StartTime)),
		"{{END_SEC}}", fmt.Sprint(timeToSeconds(m.EndTime)),
		"{{TARGET_PAGE}}", fmt.Sprint(pageNumber(m.TextbookPages.String())),
		"{{PDF_URL}}", in.Context.AssetPrefix()+textbookPDF,
		"{{ARCHIVE_SECTION}}", archiveSection(in.Archive),
		"{{ARCHIVE_INDEX_URL}}", in.Context.ArchiveIndexURL(),
		"{{CAL_MONTH_LABEL}}", fmt.Sprintf("%d年%d月", in.Date.Year(), int(in.Date.Month())),
		"{{CAL_WEEKS}}", calendarWeeksHTML(pageMonth, in.Date, in.Context),
		"{{CAL_MONTHS_JSON}}", monthsJSON,
		"{{CAL_MONTH_INDEX}}", fmt.Sprint(int(in.Date.Month())-1),
		"{{URL_PREFIX}}", in.Context.ArchivePrefix(),
	)

	return r.Replace(pageTemplate)
}

// mustJSON marshals the calendar structures for embedding in the page
// script. These are plain structs of ints and strings with no cycles, so a
// marshal failure can only mean the types changed incompatibly - panic so
// that change is caught immediately rather than shipping a broken page.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshaling calendar data: %v", err))
	}
	return string(data)
}

func displayDate(d time.Time) string {
	return fmt.Sprintf("%04d年%02d月%02d日", d.Year(), int(d.Month()), d.Day())
}

func conceptTags(concepts []string) string {
	var b strings.Builder
	for _, c := range concepts {
		fmt.Fprintf(&b, "<span class=\"concept-tag\">%s</span>\n", c)
	}
	return strings.TrimRight(b.String(), "\n")
}

// archiveSection builds the history dropdown, or nothing when there is no
// history yet. Entries arrive already sorted and capped by the index.
func archiveSection(entries []models.ArchiveEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var opts strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&opts, "<option value=\"%s\">%s</option>\n", e.URL, e.Display)
	}

	return fmt.Sprintf(`<div class="archive-section">
            <div class="archive-header">
                <span class="archive-title">历史学习记录</span>
                <select class="archive-select" onchange="goToArchive(this.value)">
                    <option value="">选择日期...</option>
                    %s</select>
            </div>
        </div>`, opts.String())
}

const pageTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>天纪每日学习 - {{TITLE}}</title>
    <link rel="preconnect" href="https://fonts.googleapis.com">
    <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
    <link href="https://fonts.googleapis.com/css2?family=Noto+Serif+SC:wght@400;600;700&family=Noto+Sans+SC:wght@300;400;500;600&display=swap" rel="stylesheet">
    <style>
        :root {
            --color-primary: #8B4513;
            --color-primary-light: #A0522D;
            --color-secondary: #2F4F4F;
            --color-accent: #CD853F;
            --color-background: #FDF5E6;
            --color-surface: #FFFAF0;
            --color-text: #333333;
            --color-text-light: #666666;
            --color-border: #DEB887;
            --color-ai: #1a5f7a;
            --shadow-sm: 0 1px 3px rgba(0,0,0,0.08);
            --shadow-md: 0 4px 12px rgba(0,0,0,0.1);
            --radius-sm: 6px;
            --radius-md: 12px;
            --radius-lg: 16px;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Noto Sans SC', -apple-system, BlinkMacSystemFont, sans-serif;
            font-size: 16px;
            line-height: 1.8;
            color: var(--color-text);
            background-color: var(--color-background);
            min-height: 100vh;
        }
        .container { max-width: 800px; margin: 0 auto; padding: 24px 20px 48px; }
        header {
            text-align: center;
            margin-bottom: 32px;
            padding-bottom: 24px;
            border-bottom: 2px solid var(--color-border);
        }
        .site-title {
            font-family: 'Noto Serif SC', serif;
            font-size: 2rem;
            font-weight: 700;
            color: var(--color-primary);
            margin-bottom: 8px;
        }
        .site-subtitle { font-size: 0.95rem; color: var(--color-text-light); }
        .date-display {
            display: inline-block;
            margin-top: 16px;
            padding: 8px 20px;
            background: var(--color-surface);
            border: 1px solid var(--color-border);
            border-radius: var(--radius-sm);
            font-size: 0.9rem;
        }
        .ai-tip {
            background: linear-gradient(135deg, #e8f4f8, #f0f8ff);
            border: 1px solid var(--color-ai);
            border-radius: var(--radius-md);
            padding: 16px 20px;
            margin-bottom: 24px;
            position: relative;
        }
        .ai-tip::before {
            content: "🤖 AI学习助手";
            position: absolute;
            top: -10px;
            left: 16px;
            background: var(--color-ai);
            color: white;
            padding: 2px 10px;
            border-radius: 10px;
            font-size: 0.75rem;
        }
        .ai-tip-content { margin-top: 8px; color: var(--color-secondary); }
        .motivation {
            font-family: 'Noto Serif SC', serif;
            font-style: italic;
            text-align: center;
            color: var(--color-primary);
            padding: 16px;
            margin-bottom: 24px;
            border-left: 3px solid var(--color-accent);
            border-right: 3px solid var(--color-accent);
            background: var(--color-surface);
        }
        .progress-section { margin-bottom: 32px; }
        .progress-header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 8px;
            font-size: 0.9rem;
            color: var(--color-text-light);
        }
        .progress-bar {
            height: 8px;
            background: var(--color-border);
            border-radius: 4px;
            overflow: hidden;
        }
        .progress-fill {
            height: 100%;
            background: linear-gradient(90deg, var(--color-primary), var(--color-accent));
            border-radius: 4px;
        }
        .question-card {
            background: var(--color-surface);
            border-radius: var(--radius-lg);
            box-shadow: var(--shadow-md);
            overflow: hidden;
            margin-bottom: 32px;
        }
        .card-header {
            background: linear-gradient(135deg, var(--color-primary), var(--color-primary-light));
            color: white;
            padding: 24px 28px;
        }
        .module-badge {
            display: inline-block;
            padding: 4px 12px;
            background: rgba(255,255,255,0.2);
            border-radius: 20px;
            font-size: 0.85rem;
            margin-bottom: 12px;
        }
        .module-title {
            font-family: 'Noto Serif SC', serif;
            font-size: 1.5rem;
            font-weight: 600;
            margin-bottom: 8px;
        }
        .module-meta {
            display: flex;
            flex-wrap: wrap;
            gap: 16px;
            font-size: 0.9rem;
            opacity: 0.9;
        }
        .meta-item { display: flex; align-items: center; gap: 6px; }
        .card-body { padding: 28px; }
        .question-section { margin-bottom: 28px; }
        .section-label {
            font-size: 0.85rem;
            color: var(--color-accent);
            text-transform: uppercase;
            letter-spacing: 0.1em;
            margin-bottom: 12px;
            font-weight: 500;
        }
        .question-text {
            font-family: 'Noto Serif SC', serif;
            font-size: 1.25rem;
            line-height: 1.9;
            color: var(--color-secondary);
            padding: 20px;
            background: var(--color-background);
            border-radius: var(--radius-md);
            border-left: 4px solid var(--color-primary);
        }
        .deeper-question {
            background: #fff8e1;
            border-left-color: var(--color-accent);
            margin-top: 16px;
            font-size: 1.1rem;
        }
        .concepts-section { margin-bottom: 28px; }
        .concepts-grid { display: flex; flex-wrap: wrap; gap: 10px; }
        .concept-tag {
            padding: 8px 16px;
            background: var(--color-background);
            border: 1px solid var(--color-border);
            border-radius: 20px;
            font-size: 0.9rem;
            color: var(--color-secondary);
        }
        .concept-tag:hover {
            background: var(--color-primary);
            color: white;
            border-color: var(--color-primary);
        }
        .prompt-section {
            background: #F5F5F0;
            border-radius: var(--radius-md);
            padding: 24px;
            margin-bottom: 28px;
        }
        .prompt-header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            margin-bottom: 16px;
        }
        .prompt-title { font-weight: 600; color: var(--color-secondary); }
        .copy-btn {
            padding: 8px 16px;
            background: var(--color-primary);
            color: white;
            border: none;
            border-radius: var(--radius-sm);
            cursor: pointer;
            font-size: 0.9rem;
        }
        .copy-btn:hover { background: var(--color-primary-light); }
        .copy-btn.copied { background: #2E7D32; }
        .prompt-content {
            font-family: 'Noto Sans SC', monospace;
            font-size: 0.9rem;
            line-height: 1.8;
            white-space: pre-wrap;
            color: var(--color-text);
            background: white;
            padding: 20px;
            border-radius: var(--radius-sm);
            border: 1px solid var(--color-border);
            max-height: 300px;
            overflow-y: auto;
        }
        .resources-section {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 16px;
        }
        .resource-link {
            display: flex;
            align-items: center;
            gap: 12px;
            padding: 16px 20px;
            background: var(--color-background);
            border: 1px solid var(--color-border);
            border-radius: var(--radius-md);
            text-decoration: none;
            color: var(--color-text);
        }
        .resource-link:hover {
            border-color: var(--color-primary);
            box-shadow: var(--shadow-sm);
        }
        .resource-icon { font-size: 1.5rem; }
        .resource-info { flex: 1; }
        .resource-title { font-weight: 500; margin-bottom: 2px; }
        .resource-detail { font-size: 0.85rem; color: var(--color-text-light); }
        .archive-section {
            background: var(--color-surface);
            border-radius: var(--radius-lg);
            padding: 24px 28px;
            box-shadow: var(--shadow-sm);
        }
        .archive-header {
            display: flex;
            justify-content: space-between;
            align-items: center;
        }
        .archive-title { font-weight: 600; color: var(--color-secondary); }
        .archive-select {
            padding: 10px 16px;
            border: 1px solid var(--color-border);
            border-radius: var(--radius-sm);
            background: white;
            font-size: 0.9rem;
            cursor: pointer;
            min-width: 180px;
        }
        .calendar-container { position: relative; display: inline-block; margin-bottom: 12px; }
        .calendar-button {
            padding: 4px 12px;
            background: rgba(139,69,19,0.1);
            border: 1px solid var(--color-border);
            border-radius: 20px;
            color: var(--color-primary);
            font-size: 0.85rem;
            cursor: pointer;
        }
        .calendar-dropdown {
            display: none;
            position: absolute;
            top: 35px;
            left: 0;
            background: var(--color-surface);
            border: 2px solid var(--color-primary);
            border-radius: var(--radius-md);
            box-shadow: 0 8px 24px rgba(0,0,0,0.15);
            padding: 16px;
            z-index: 1000;
            min-width: 320px;
        }
        .calendar-dropdown.show { display: block; }
        .calendar-header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            font-weight: 600;
            margin-bottom: 12px;
            color: var(--color-primary);
        }
        .month-nav-btn {
            background: none;
            border: none;
            color: var(--color-primary);
            font-size: 1.2rem;
            cursor: pointer;
            padding: 4px 8px;
        }
        .calendar-weekdays {
            display: grid;
            grid-template-columns: repeat(7, 1fr);
            gap: 4px;
            margin-bottom: 8px;
        }
        .calendar-weekday {
            text-align: center;
            font-size: 0.75rem;
            color: var(--color-text-light);
            padding: 4px;
        }
        .calendar-week {
            display: grid;
            grid-template-columns: repeat(7, 1fr);
            gap: 4px;
            margin-bottom: 4px;
        }
        .calendar-day {
            text-align: center;
            padding: 8px 4px;
            border-radius: 4px;
            cursor: pointer;
        }
        .calendar-day:hover { background: var(--color-background); }
        .calendar-day.today { background: var(--color-primary); color: white; }
        .calendar-day.empty { cursor: default; }
        .calendar-day.disabled { opacity: 0.3; cursor: not-allowed; }
        .calendar-day.disabled:hover { background: transparent; }
        .solar-day { font-size: 0.9rem; font-weight: 500; color: var(--color-text); }
        .lunar-day { font-size: 0.7rem; color: var(--color-text-light); margin-top: 2px; }
        .calendar-day.today .solar-day { color: white; }
        .calendar-day.today .lunar-day { color: rgba(255,255,255,0.8); }
        footer {
            text-align: center;
            padding-top: 32px;
            color: var(--color-text-light);
            font-size: 0.85rem;
        }
        footer a { color: var(--color-primary); text-decoration: none; }
        footer a:hover { text-decoration: underline; }
        .powered-by {
            display: inline-flex;
            align-items: center;
            gap: 6px;
            margin-top: 8px;
            padding: 4px 12px;
            background: var(--color-ai);
            color: white;
            border-radius: 12px;
            font-size: 0.75rem;
        }
        @media (max-width: 600px) {
            .container { padding: 16px 16px 32px; }
            .site-title { font-size: 1.6rem; }
            .module-title { font-size: 1.25rem; }
            .question-text { font-size: 1.1rem; padding: 16px; }
            .card-header, .card-body { padding: 20px; }
            .module-meta { flex-direction: column; gap: 8px; }
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1 class="site-title">天纪每日学习</h1>
            <p class="site-subtitle">倪海厦天纪课程 · 费曼学习法 · AI增强</p>
            <div class="calendar-container">
                <button class="calendar-button" onclick="toggleCalendar()">📅 学习日历</button>
                <div class="calendar-dropdown" id="calendar-dropdown">
                    <div class="calendar-header">
                        <button class="month-nav-btn" onclick="changeMonth(-1)">‹</button>
                        <span id="calendar-month-year">{{CAL_MONTH_LABEL}}</span>
                        <button class="month-nav-btn" onclick="changeMonth(1)">›</button>
                    </div>
                    <div class="calendar-weekdays">
                        <div class="calendar-weekday">日</div>
                        <div class="calendar-weekday">一</div>
                        <div class="calendar-weekday">二</div>
                        <div class="calendar-weekday">三</div>
                        <div class="calendar-weekday">四</div>
                        <div class="calendar-weekday">五</div>
                        <div class="calendar-weekday">六</div>
                    </div>
                    {{CAL_WEEKS}}
                </div>
            </div>
            <div class="date-display">{{DATE_DISPLAY}}</div>
        </header>

        <div class="motivation">「{{MOTIVATION}}」</div>

        <div class="ai-tip">
            <div class="ai-tip-content">
                <strong>今日学习提示：</strong>{{DAILY_TIP}}
                <br><br>
                <strong>知识关联：</strong>{{CONNECTION_HINT}}
            </div>
        </div>

        <div class="progress-section">
            <div class="progress-header">
                <span>学习进度</span>
                <span>第 {{POSITION}} / {{TOTAL}} 模块</span>
            </div>
            <div class="progress-bar">
                <div class="progress-fill" style="width: {{PROGRESS}}%"></div>
            </div>
        </div>

        <div class="question-card">
            <div class="card-header">
                <div class="module-badge">模块 {{MODULE_ID}}</div>
                <h2 class="module-title">{{TITLE}}</h2>
                <div class="module-meta">
                    <span class="meta-item"><span>📺</span><span>第 {{EPISODE}} 集</span></span>
                    <span class="meta-item"><span>📖</span><span>教材第 {{PAGES}} 页</span></span>
                    <span class="meta-item"><span>⏱️</span><span>{{START_SEC}}s - {{END_SEC}}s</span></span>
                </div>
            </div>

            <div class="card-body">
                <div class="question-section">
                    <div class="section-label">今日学习问题</div>
                    <div class="question-text">{{QUESTION}}</div>
                    <div class="question-text deeper-question">
                        <strong>深入思考：</strong>{{DEEPER_QUESTION}}
                    </div>
                </div>

                <div class="concepts-section">
                    <div class="section-label">核心概念</div>
                    <div class="concepts-grid">
                        {{CONCEPTS}}
                    </div>
                </div>

                <div class="prompt-section">
                    <div class="prompt-header">
                        <span class="prompt-title">教回提示词 (Feynman Technique)</span>
                        <button class="copy-btn" onclick="copyPrompt()">复制提示词</button>
                    </div>
                    <div class="prompt-content" id="prompt-text">{{PROMPT}}</div>
                </div>

                <div class="resources-section">
                    <a href="{{VIDEO_URL}}" target="_blank" rel="noopener" class="resource-link">
                        <span class="resource-icon">🎬</span>
                        <div class="resource-info">
                            <div class="resource-title">观看视频</div>
                            <div class="resource-detail">天纪第 {{EPISODE}} 集</div>
                        </div>
                    </a>
                    <a href="{{PDF_URL}}" target="_blank" rel="noopener" class="resource-link">
                        <span class="resource-icon">📚</span>
                        <div class="resource-info">
                            <div class="resource-title">阅读教材</div>
                            <div class="resource-detail">天机道 第 {{PAGES}} 页</div>
                        </div>
                    </a>
                    <a href="{{ARCHIVE_INDEX_URL}}" class="resource-link">
                        <span class="resource-icon">🗂️</span>
                        <div class="resource-info">
                            <div class="resource-title">学习档案</div>
                            <div class="resource-detail">全部历史页面</div>
                        </div>
                    </a>
                </div>
            </div>
        </div>

        {{ARCHIVE_SECTION}}

        <footer>
            <p>基于费曼学习法设计 · {{DATE_DISPLAY}}</p>
            <div class="powered-by">🤖 AI增强内容</div>
        </footer>
    </div>

    <script>
        const pageConfig = {
            videoId: '{{VIDEO_ID}}',
            startTime: {{START_SEC}},
            endTime: {{END_SEC}},
            targetPage: {{TARGET_PAGE}}
        };
        const allMonthsData = {{CAL_MONTHS_JSON}};
        let currentMonthIndex = {{CAL_MONTH_INDEX}};
        const urlPrefix = "{{URL_PREFIX}}";

        function copyPrompt() {
            const promptText = document.getElementById('prompt-text').textContent;
            navigator.clipboard.writeText(promptText).then(() => {
                const btn = document.querySelector('.copy-btn');
                btn.textContent = '已复制!';
                btn.classList.add('copied');
                setTimeout(() => {
                    btn.textContent = '复制提示词';
                    btn.classList.remove('copied');
                }, 2000);
            });
        }
        function goToArchive(url) {
            if (url) window.location.href = url;
        }
        function toggleCalendar() {
            document.getElementById('calendar-dropdown').classList.toggle('show');
        }
        function navigateToDate(url) {
            window.location.href = url;
        }
        function changeMonth(direction) {
            currentMonthIndex += direction;
            if (currentMonthIndex < 0) { currentMonthIndex = 0; return; }
            if (currentMonthIndex >= allMonthsData.length) { currentMonthIndex = allMonthsData.length - 1; return; }
            renderCalendar(currentMonthIndex);
        }
        function renderCalendar(monthIndex) {
            const monthData = allMonthsData[monthIndex];
            document.getElementById('calendar-month-year').textContent = monthData.year + '年' + monthData.month + '月';
            let calendarHTML = '';
            monthData.calendar.forEach(week => {
                calendarHTML += '<div class="calendar-week">';
                week.forEach(dayData => {
                    if (dayData === null) {
                        calendarHTML += '<div class="calendar-day empty"></div>';
                    } else {
                        const disabledClass = dayData.is_clickable ? '' : ' disabled';
                        const dateStr = monthData.year + '-' + String(monthData.month).padStart(2, '0') + '-' + String(dayData.day).padStart(2, '0');
                        const onclick = dayData.is_clickable ?
                            'onclick="navigateToDate(\'' + urlPrefix + dateStr + '.html\')"' : '';
                        calendarHTML += '<div class="calendar-day' + disabledClass + '" ' + onclick + '>';
                        calendarHTML += '<div class="solar-day">' + dayData.day + '</div>';
                        calendarHTML += '<div class="lunar-day">' + dayData.lunar_day + '</div>';
                        calendarHTML += '</div>';
                    }
                });
                calendarHTML += '</div>';
            });
            const container = document.querySelector('.calendar-dropdown');
            container.querySelectorAll('.calendar-week').forEach(week => week.remove());
            container.querySelector('.calendar-weekdays').insertAdjacentHTML('afterend', calendarHTML);
        }
        document.addEventListener('click', function(event) {
            const container = document.querySelector('.calendar-container');
            if (container && !container.contains(event.target)) {
                document.getElementById('calendar-dropdown').classList.remove('show');
            }
        });
    </script>
</body>
</html>`
