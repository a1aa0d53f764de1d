package site

// pageTemplate is the Go html/template for the catalog page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body{{if .LiveReload}} data-live-reload="true"{{end}}>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="project-title">{{.ProjectName}}</h2>
      <input type="text" id="search-input" placeholder="Filter sections..." autocomplete="off">
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.TOCHTML}}
    </div>
  </nav>
  <main class="content">
    <article class="page-content">
      <h1>{{.ProjectName}}</h1>
      {{.Content}}
    </article>
  </main>
  <div class="toast" id="toast"></div>
  <script src="script.js"></script>
</body>
</html>`

// cssContent is the stylesheet for the catalog page.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --code-bg: #f1f3f5;
  --sidebar-width: 280px;
  --content-max-width: 900px;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.6;
}

/* ============ Sidebar ============ */
.sidebar {
  position: fixed;
  top: 0;
  left: 0;
  bottom: 0;
  width: var(--sidebar-width);
  overflow-y: auto;
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  padding: 16px;
}
.project-title { margin: 0 0 12px; font-size: 1.2rem; }
#search-input {
  width: 100%;
  padding: 6px 8px;
  border: 1px solid var(--border);
  border-radius: 4px;
}
.sidebar-tree ul { list-style: none; padding-left: 12px; margin: 4px 0; }
.sidebar-tree > ul { padding-left: 0; }
.sidebar-tree a { color: var(--text); text-decoration: none; }
.sidebar-tree a:hover { color: var(--accent); }
.sidebar-tree li.hidden { display: none; }

/* ============ Content ============ */
.content { margin-left: var(--sidebar-width); padding: 24px 40px; }
.page-content { max-width: var(--content-max-width); }
.page-content pre {
  background: var(--code-bg);
  padding: 12px;
  border-radius: 4px;
  overflow-x: auto;
}
.page-content code { font-family: SFMono-Regular, Menlo, monospace; font-size: 0.9em; }
div.sect1 { border-top: 1px solid var(--border); margin-top: 24px; }

a.command {
  border: 1px solid gray;
  padding: 8px;
  font-family: sans-serif;
  color: #333333;
  border-radius: 3px;
  text-decoration: none;
}
a.command:active { background-color: #eaeaea; }

/* ============ Section menus ============ */
.section-menu { float: right; margin-top: 20px; cursor: pointer; }
div.section-menu-content {
  display: none;
  float: right;
  clear: right;
  border: 1px solid #cccccc;
  margin-top: 10px;
  background-color: #eaeaea;
  padding: 5px;
  font-family: sans-serif;
  color: black;
  border-radius: 3px;
}
div.section-menu-content.active { display: block; }
div.section-menu-content a { text-decoration: none; padding: 5px; color: black; }
div.section-menu-content a span { padding-left: 10px; }

/* ============ Toast ============ */
.toast {
  position: fixed;
  right: 16px;
  bottom: 16px;
  padding: 8px 12px;
  border-radius: 4px;
  background: #343a40;
  color: #ffffff;
  opacity: 0;
  transition: opacity 0.2s;
}
.toast.visible { opacity: 1; }

@media (max-width: 768px) {
  .sidebar { display: none; }
  .content { margin-left: 0; padding: 16px; }
}
`

// jsContent wires section menus, link interception and live reload.
const jsContent = `(function() {
  "use strict";

  var toast = document.getElementById("toast");
  var served = location.protocol === "http:" || location.protocol === "https:";

  function notify(msg) {
    if (!toast) return;
    toast.textContent = msg;
    toast.classList.add("visible");
    setTimeout(function() { toast.classList.remove("visible"); }, 2500);
  }

  // ===== Section menus =====
  document.querySelectorAll("a.section-menu").forEach(function(trigger) {
    var panel = trigger.nextElementSibling;
    if (!panel || !panel.classList.contains("section-menu-content")) return;
    trigger.addEventListener("click", function(e) {
      e.preventDefault();
      if (panel.classList.contains("active")) {
        panel.classList.remove("active");
      } else {
        panel.classList.add("active");
      }
    });
  });

  // ===== Link interception =====
  // Action links (editSection:, run:, ...) and http://run/ links go to the host.
  function isHostLink(href) {
    if (!href || href.charAt(0) === "#") return false;
    if (/^https?:\/\/run\//i.test(href)) return true;
    return /^[A-Za-z]+:/.test(href) && !/^(https?|mailto|data|javascript):/i.test(href);
  }

  document.addEventListener("click", function(e) {
    var link = e.target.closest ? e.target.closest("a[href]") : null;
    if (!link) return;
    var href = link.getAttribute("href");
    if (!isHostLink(href)) return;
    e.preventDefault();
    if (!served) {
      notify("Open this catalog through the shellmarks server to use " + href);
      return;
    }
    fetch("/api/links", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ href: href })
    })
      .then(function(r) { return r.json().then(function(body) { return { ok: r.ok, body: body }; }); })
      .then(function(res) {
        if (!res.ok) {
          notify(res.body.error || "Request failed");
          return;
        }
        var panel = link.closest(".section-menu-content");
        if (panel) panel.classList.remove("active");
        if (res.body.created) {
          notify("Created " + res.body.path);
        } else if (res.body.path) {
          notify("Opened " + res.body.path);
        }
      })
      .catch(function() { notify("Catalog server unreachable"); });
  });

  // ===== Sidebar filter =====
  var searchInput = document.getElementById("search-input");
  var sidebarTree = document.getElementById("sidebar-tree");
  if (searchInput && sidebarTree) {
    searchInput.addEventListener("input", function() {
      var query = this.value.toLowerCase().trim();
      sidebarTree.querySelectorAll("li").forEach(function(item) {
        var match = query === "" || item.textContent.toLowerCase().indexOf(query) !== -1;
        item.classList.toggle("hidden", !match);
      });
    });
  }

  // ===== Live reload =====
  if (served && document.body.getAttribute("data-live-reload") === "true") {
    (function connect() {
      var scheme = location.protocol === "https:" ? "wss://" : "ws://";
      var ws = new WebSocket(scheme + location.host + "/ws/reload");
      ws.onmessage = function(ev) {
        try {
          if (JSON.parse(ev.data).type === "reload") location.reload();
        } catch (err) {}
      };
      ws.onclose = function() { setTimeout(connect, 2000); };
    })();
  }
})();
`

// Stylesheet and Script are the assets index.html refers to.
const (
	Stylesheet = cssContent
	Script     = jsContent
)
