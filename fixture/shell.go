package fixture

// ShellPage mirrors the behavior of the wisdom UI shell: desktop sidebar
// with collapsible groups, mobile drawer with backdrop and route
// auto-dismiss, and fullscreen mode with idle-hiding controls. Every query
// hook the interaction scripts consume is present here.
const ShellPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>wisdom</title>
<style>
  * { margin: 0; box-sizing: border-box; }
  body { font-family: system-ui, sans-serif; color: #1b1b1b; }
  [hidden] { display: none !important; }

  header {
    display: flex; align-items: center; gap: 12px;
    padding: 10px 16px; border-bottom: 1px solid #d5d5d5;
  }
  [data-testid='desktop-sidebar'] {
    position: fixed; top: 49px; left: 0; bottom: 0; width: 240px;
    padding: 12px; border-right: 1px solid #d5d5d5; overflow-y: auto;
  }
  [data-testid='sidebar-nav'] a { display: block; padding: 4px 8px; }
  main { padding: 24px; margin-left: 260px; }

  [data-testid='mobile-menu-button'] { display: none; }
  @media (max-width: 767px) {
    [data-testid='desktop-sidebar'] { display: none; }
    [data-testid='mobile-menu-button'] { display: inline-block; }
    main { margin-left: 0; }
  }

  [data-testid='mobile-backdrop'] {
    position: fixed; inset: 0; background: rgba(0, 0, 0, 0.4);
  }
  [data-testid='mobile-drawer'] {
    position: fixed; top: 0; left: 0; bottom: 0; width: 280px;
    max-width: 85vw; padding: 16px; background: #fff;
    box-shadow: 2px 0 12px rgba(0, 0, 0, 0.25);
  }

  [data-testid='fullscreen-reveal-strip'] {
    position: fixed; top: 0; left: 0; right: 0; height: 8px; display: none;
  }
  [data-testid='fullscreen-controls'] {
    position: fixed; top: 0; left: 0; right: 0; display: none;
    padding: 8px 16px; background: #20242b; color: #fff;
  }
  [data-fullscreen='true'] [data-testid='fullscreen-reveal-strip'] { display: block; }
  [data-fullscreen='true'] [data-testid='fullscreen-controls'] { display: block; }
  [data-testid='fullscreen-controls'][data-visible='false'] { visibility: hidden; }
  [data-fullscreen='true'] header { display: none; }
  [data-fullscreen='true'] [data-testid='desktop-sidebar'] { display: none; }
  [data-fullscreen='true'] main { margin-left: 0; }
</style>
</head>
<body>
<div data-testid="shell-root" data-fullscreen="false" data-mobile-sidebar-open="false">
  <header>
    <button data-testid="mobile-menu-button" type="button">Menu</button>
    <strong>wisdom</strong>
    <button data-testid="fullscreen-toggle-header" type="button">Fullscreen</button>
  </header>

  <nav data-testid="desktop-sidebar">
    <div data-testid="sidebar-nav">
      <a href="/ws/">workspace</a>
      <a href="/ws/ui/">ui</a>
      <button type="button" data-group-toggle="nav-group-components"
              aria-expanded="true" aria-controls="nav-group-components">components</button>
      <div id="nav-group-components">
        <a href="/ws/ui/src/components/shell.tsx/">shell.tsx</a>
      </div>
    </div>
  </nav>

  <div data-testid="mobile-backdrop" hidden></div>
  <aside data-testid="mobile-drawer" hidden>
    <div data-testid="sidebar-nav">
      <a href="/ws/">workspace</a>
      <a href="/ws/ui/">ui</a>
    </div>
  </aside>

  <div data-testid="fullscreen-reveal-strip" tabindex="0"></div>
  <div data-testid="fullscreen-controls" data-visible="false">
    <button data-testid="fullscreen-toggle-overlay" type="button">Exit fullscreen</button>
  </div>

  <main>
    <h1>Workspace</h1>
    <p>Stub shell for harness development.</p>
  </main>
</div>
<script>
(function () {
  var root = document.querySelector("[data-testid='shell-root']");
  var menuButton = document.querySelector("[data-testid='mobile-menu-button']");
  var headerToggle = document.querySelector("[data-testid='fullscreen-toggle-header']");
  var overlayToggle = document.querySelector("[data-testid='fullscreen-toggle-overlay']");
  var controls = document.querySelector("[data-testid='fullscreen-controls']");
  var strip = document.querySelector("[data-testid='fullscreen-reveal-strip']");
  var drawer = document.querySelector("[data-testid='mobile-drawer']");
  var backdrop = document.querySelector("[data-testid='mobile-backdrop']");

  var IDLE_MS = 1800;
  var hideTimer = null;

  function isFullscreen() {
    return root.getAttribute('data-fullscreen') === 'true';
  }

  function drawerOpen() {
    return root.getAttribute('data-mobile-sidebar-open') === 'true';
  }

  function hideControls() {
    controls.setAttribute('data-visible', 'false');
  }

  function scheduleHide() {
    clearTimeout(hideTimer);
    hideTimer = setTimeout(function () {
      if (controls.contains(document.activeElement)) {
        scheduleHide();
        return;
      }
      hideControls();
    }, IDLE_MS);
  }

  function showControls() {
    controls.setAttribute('data-visible', 'true');
    scheduleHide();
  }

  function setFullscreen(on) {
    root.setAttribute('data-fullscreen', on ? 'true' : 'false');
    clearTimeout(hideTimer);
    hideControls();
  }

  function setDrawer(open) {
    root.setAttribute('data-mobile-sidebar-open', open ? 'true' : 'false');
    drawer.hidden = !open;
    backdrop.hidden = !open;
  }

  headerToggle.addEventListener('click', function () { setFullscreen(true); });
  overlayToggle.addEventListener('click', function () { setFullscreen(false); });
  menuButton.addEventListener('click', function () { setDrawer(true); });
  backdrop.addEventListener('click', function () { setDrawer(false); });
  strip.addEventListener('click', function () { showControls(); });

  drawer.addEventListener('click', function (event) {
    if (event.target.closest('a')) { setDrawer(false); }
  });

  document.addEventListener('mousemove', function (event) {
    if (isFullscreen() && event.clientY <= 16) { showControls(); }
  });

  document.addEventListener('keydown', function (event) {
    if (event.key !== 'Escape') { return; }
    if (drawerOpen()) { setDrawer(false); return; }
    if (isFullscreen()) { setFullscreen(false); }
  });

  document.querySelectorAll('[data-group-toggle]').forEach(function (toggle) {
    toggle.addEventListener('click', function () {
      var target = document.getElementById(toggle.getAttribute('data-group-toggle'));
      var expanded = toggle.getAttribute('aria-expanded') === 'true';
      if (expanded) {
        toggle.setAttribute('aria-expanded', 'false');
        toggle.removeAttribute('aria-controls');
        target.hidden = true;
      } else {
        toggle.setAttribute('aria-expanded', 'true');
        toggle.setAttribute('aria-controls', toggle.getAttribute('data-group-toggle'));
        target.hidden = false;
      }
    });
  });
}());
</script>
</body>
</html>
`
